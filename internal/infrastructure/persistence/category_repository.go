package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormCategoryRepository persists catalog categories.
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

// FindAll lists categories ordered by name, searchable by name substring.
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Category{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var categories []catalog.Category
	err := paginate(query, filter).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category; deleting an unknown ID reports ErrNotFound.
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "id = ?", id)
	switch {
	case result.Error != nil:
		return result.Error
	case result.RowsAffected == 0:
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
