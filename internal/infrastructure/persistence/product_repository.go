package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// productSortFields whitelists the columns FindAll may order by.
var productSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"sku":        true,
	"price":      true,
}

// GormProductRepository persists the product catalog.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// FindBySKU looks a product up by SKU. SKUs are stored uppercase.
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).Where("sku = ?", strings.ToUpper(sku)).First(&product).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return r.findMatching(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("category_id = ?", categoryID)
	return r.findMatching(query, filter)
}

func (r *GormProductRepository) findMatching(query *gorm.DB, filter shared.Filter) ([]catalog.Product, error) {
	query = r.match(query, filter)
	query = paginate(query, filter)

	orderBy := ValidateSortField(filter.OrderBy, productSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var products []catalog.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	switch {
	case result.Error != nil:
		return result.Error
	case result.RowsAffected == 0:
		return shared.ErrNotFound
	}
	return nil
}

// Count reports how many products match the filter, ignoring pagination.
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.match(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	err := query.Count(&count).Error
	return count, err
}

// match applies the search pattern and known attribute filters.
func (r *GormProductRepository) match(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ? OR generic_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "requires_prescription":
			query = query.Where("requires_prescription = ?", value)
		}
	}
	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
