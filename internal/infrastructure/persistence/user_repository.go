package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by their ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByUsername finds a user by their username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(username)).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByEmail finds a user by their email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByBranch finds users assigned to a branch
func (r *GormUserRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&identity.User{}).
			Where("branch_id = ?", branchID),
		filter,
	)

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindAll finds all users
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.User{}), filter)

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormUserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	query = paginate(query, filter)

	allowedSortFields := map[string]bool{
		"created_at": true,
		"username":   true,
	}
	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
