package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Branch, error) {
	var branch catalog.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &branch, nil
}

// FindByCode finds a branch by its code
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*catalog.Branch, error) {
	var branch catalog.Branch
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&branch).Error; err != nil {
		return nil, notFound(err)
	}
	return &branch, nil
}

// FindAll finds all branches
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Branch, error) {
	var branches []catalog.Branch
	query := r.db.WithContext(ctx).Model(&catalog.Branch{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}
	query = paginate(query, filter)
	query = query.Order("name ASC")

	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// FindActive finds all active branches
func (r *GormBranchRepository) FindActive(ctx context.Context) ([]catalog.Branch, error) {
	var branches []catalog.Branch
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// ExistsByID reports whether a branch exists
func (r *GormBranchRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Branch{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *catalog.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// Delete deletes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Branch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.BranchRepository = (*GormBranchRepository)(nil)
