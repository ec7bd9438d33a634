package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormDiscountRepository persists discount rules and their product
// associations (product_discounts join table).
type GormDiscountRepository struct {
	db *gorm.DB
}

func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Discount, error) {
	var discount catalog.Discount
	err := r.db.WithContext(ctx).Preload("Products").First(&discount, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &discount, nil
}

func (r *GormDiscountRepository) FindByName(ctx context.Context, name string) (*catalog.Discount, error) {
	var discount catalog.Discount
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&discount).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &discount, nil
}

// FindAll lists discounts ordered by name, searchable by name substring.
// Filters: "type", "enabled".
func (r *GormDiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Discount, error) {
	var discounts []catalog.Discount
	err := paginate(r.match(ctx, filter), filter).Order("name ASC").Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

// FindActiveForProduct returns enabled rules inside their validity window
// that are either shop-wide (no associations) or associated with the product.
func (r *GormDiscountRepository) FindActiveForProduct(ctx context.Context, productID uuid.UUID, at time.Time) ([]catalog.Discount, error) {
	var discounts []catalog.Discount
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Where("start_date IS NULL OR start_date <= ?", at).
		Where("end_date IS NULL OR end_date >= ?", at).
		Where(`id NOT IN (SELECT discount_id FROM product_discounts)
			OR id IN (SELECT discount_id FROM product_discounts WHERE product_id = ?)`, productID).
		Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

// ReplaceProducts replaces the discount's product associations.
func (r *GormDiscountRepository) ReplaceProducts(ctx context.Context, discount *catalog.Discount, products []catalog.Product) error {
	return r.db.WithContext(ctx).Model(discount).Association("Products").Replace(products)
}

func (r *GormDiscountRepository) Save(ctx context.Context, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Omit("Products").Save(discount).Error
}

// Delete removes a discount; the join table rows are cleared first so no
// orphaned associations remain.
func (r *GormDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_discounts WHERE discount_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Discount{}, "id = ?", id)
		switch {
		case result.Error != nil:
			return result.Error
		case result.RowsAffected == 0:
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormDiscountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.match(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDiscountRepository) match(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&catalog.Discount{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "enabled":
			query = query.Where("enabled = ?", value)
		}
	}
	return query
}

var _ catalog.DiscountRepository = (*GormDiscountRepository)(nil)
