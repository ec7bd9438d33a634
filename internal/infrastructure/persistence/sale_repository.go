package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale with its line items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sale, nil
}

// FindByBranch finds sales at a branch, newest first
func (r *GormSaleRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	var records []sales.Sale
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Sale{}).
			Preload("Items").
			Where("branch_id = ?", branchID),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBySeller finds sales recorded by a user
func (r *GormSaleRepository) FindBySeller(ctx context.Context, soldBy uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	var records []sales.Sale
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Sale{}).
			Preload("Items").
			Where("sold_by = ?", soldBy),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDateRange finds sales at a branch within a time window
func (r *GormSaleRepository) FindByDateRange(ctx context.Context, branchID uuid.UUID, start, end time.Time, filter shared.Filter) ([]sales.Sale, error) {
	var records []sales.Sale
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Sale{}).
			Preload("Items").
			Where("branch_id = ? AND sold_at >= ? AND sold_at <= ?", branchID, start, end),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindRecent finds the latest sales, newest first. A nil branchID spans
// all branches.
func (r *GormSaleRepository) FindRecent(ctx context.Context, branchID *uuid.UUID, limit int) ([]sales.Sale, error) {
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Preload("Items").
		Order("sold_at DESC").
		Limit(limit)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var records []sales.Sale
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumByBranchAndDateRange aggregates revenue and transaction count inside
// a time window. A nil branchID spans all branches.
func (r *GormSaleRepository) SumByBranchAndDateRange(ctx context.Context, branchID *uuid.UUID, start, end time.Time) (sales.SalesTotals, error) {
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Where("sold_at >= ? AND sold_at < ?", start, end)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var totals sales.SalesTotals
	err := query.
		Select("COALESCE(SUM(total_amount), 0) AS total_amount, COUNT(id) AS transaction_count").
		Scan(&totals).Error
	if err != nil {
		return sales.SalesTotals{}, err
	}
	return totals, nil
}

// Save creates or updates a sale and its line items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// CountByBranch counts sales at a branch
func (r *GormSaleRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = paginate(query, filter)

	allowedSortFields := map[string]bool{
		"sold_at":      true,
		"total_amount": true,
	}
	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, "sold_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
