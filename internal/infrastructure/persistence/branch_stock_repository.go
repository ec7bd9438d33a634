package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormBranchStockRepository implements BranchStockRepository using GORM
type GormBranchStockRepository struct {
	db *gorm.DB
}

// NewGormBranchStockRepository creates a new GormBranchStockRepository
func NewGormBranchStockRepository(db *gorm.DB) *GormBranchStockRepository {
	return &GormBranchStockRepository{db: db}
}

// FindByID finds a branch stock record by its ID
func (r *GormBranchStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.BranchStock, error) {
	var stock inventory.BranchStock
	if err := r.db.WithContext(ctx).First(&stock, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &stock, nil
}

// FindByProductAndBranch finds the record for a product-branch pair
func (r *GormBranchStockRepository) FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (*inventory.BranchStock, error) {
	var stock inventory.BranchStock
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&stock).Error; err != nil {
		return nil, notFound(err)
	}
	return &stock, nil
}

// FindByProductAndBranchForUpdate finds the record with a row lock.
// Must be called within a transaction; the lock serializes concurrent
// mutations of the same product-branch pair.
func (r *GormBranchStockRepository) FindByProductAndBranchForUpdate(ctx context.Context, productID, branchID uuid.UUID) (*inventory.BranchStock, error) {
	var stock inventory.BranchStock
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&stock).Error; err != nil {
		return nil, notFound(err)
	}
	return &stock, nil
}

// FindByBranch finds all stock records at a branch
func (r *GormBranchStockRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.BranchStock, error) {
	var stocks []inventory.BranchStock
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.BranchStock{}).
			Where("branch_id = ?", branchID),
		filter,
	)

	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByProduct finds stock records for a product across branches
func (r *GormBranchStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.BranchStock, error) {
	var stocks []inventory.BranchStock
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.BranchStock{}).
			Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindBelowReorder finds records at or below their effective reorder point
func (r *GormBranchStockRepository) FindBelowReorder(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.BranchStock, error) {
	var stocks []inventory.BranchStock
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.BranchStock{}).
			Where("branch_id = ? AND current_stock <= COALESCE(reorder_point, ?)", branchID, inventory.DefaultReorderPoint),
		filter,
	)

	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// ExistsByProductAndBranch reports whether a record exists for the pair
func (r *GormBranchStockRepository) ExistsByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.BranchStock{}).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a branch stock record
func (r *GormBranchStockRepository) Save(ctx context.Context, stock *inventory.BranchStock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormBranchStockRepository) SaveWithLock(ctx context.Context, stock *inventory.BranchStock) error {
	result := r.db.WithContext(ctx).
		Model(stock).
		Where("id = ? AND version = ?", stock.ID, stock.Version-1).
		Updates(map[string]interface{}{
			"current_stock": stock.CurrentStock,
			"minimum_stock": stock.MinimumStock,
			"reorder_point": stock.ReorderPoint,
			"maximum_stock": stock.MaximumStock,
			"version":       stock.Version,
			"updated_at":    stock.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Stock record was modified by another transaction")
	}
	return nil
}

// CountByBranch counts stock records at a branch
func (r *GormBranchStockRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.BranchStock{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBelowReorder counts records at or below their reorder point.
// A nil branchID spans all branches.
func (r *GormBranchStockRepository) CountBelowReorder(ctx context.Context, branchID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.BranchStock{}).
		Where("current_stock <= COALESCE(reorder_point, ?)", inventory.DefaultReorderPoint)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOutOfStock counts records with nothing on hand. A nil branchID
// spans all branches.
func (r *GormBranchStockRepository) CountOutOfStock(ctx context.Context, branchID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.BranchStock{}).
		Where("current_stock = 0")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumStockByProduct sums on-hand stock for a product across all branches
func (r *GormBranchStockRepository) SumStockByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.BranchStock{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(current_stock), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormBranchStockRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	query = paginate(query, filter)

	allowedSortFields := map[string]bool{
		"created_at":    true,
		"updated_at":    true,
		"current_stock": true,
	}
	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormBranchStockRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "out_of_stock":
			if value == true {
				query = query.Where("current_stock = 0")
			}
		case "has_stock":
			if value == true {
				query = query.Where("current_stock > 0")
			}
		}
	}

	return query
}

var _ inventory.BranchStockRepository = (*GormBranchStockRepository)(nil)
