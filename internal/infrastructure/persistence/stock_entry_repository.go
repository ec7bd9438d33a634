package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// GormStockEntryRepository implements StockEntryRepository using GORM.
// Entries are append-only; there is no update or delete path.
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewGormStockEntryRepository creates a new GormStockEntryRepository
func NewGormStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormStockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockEntry, error) {
	var entry inventory.StockEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// FindByProductAndBranch finds ledger history for a product-branch pair,
// newest first
func (r *GormStockEntryRepository) FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockEntry{}).
			Where("product_id = ? AND branch_id = ?", productID, branchID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindLatestByProductAndBranch finds the most recent entry for a pair
func (r *GormStockEntryRepository) FindLatestByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (*inventory.StockEntry, error) {
	var entry inventory.StockEntry
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		Order("created_at DESC").
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// FindByBranch finds ledger entries at a branch
func (r *GormStockEntryRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockEntry{}).
			Where("branch_id = ?", branchID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByReference finds entries produced by a referencing operation,
// such as all the debits of one sale
func (r *GormStockEntryRepository) FindByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	if err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDateRange finds entries at a branch within a time window
func (r *GormStockEntryRepository) FindByDateRange(ctx context.Context, branchID uuid.UUID, start, end time.Time, filter shared.Filter) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockEntry{}).
			Where("branch_id = ? AND created_at >= ? AND created_at <= ?", branchID, start, end),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByType finds entries of one transaction type at a branch
func (r *GormStockEntryRepository) FindByType(ctx context.Context, branchID uuid.UUID, txType inventory.TransactionType, filter shared.Filter) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockEntry{}).
			Where("branch_id = ? AND transaction_type = ?", branchID, txType),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create appends a ledger entry
func (r *GormStockEntryRepository) Create(ctx context.Context, entry *inventory.StockEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch appends multiple ledger entries
func (r *GormStockEntryRepository) CreateBatch(ctx context.Context, entries []*inventory.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

// CountByProductAndBranch counts ledger entries for a pair
func (r *GormStockEntryRepository) CountByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "transaction_type":
			query = query.Where("transaction_type = ?", value)
		case "performed_by":
			query = query.Where("performed_by = ?", value)
		case "start_date":
			query = query.Where("created_at >= ?", value)
		case "end_date":
			query = query.Where("created_at <= ?", value)
		}
	}

	query = paginate(query, filter)

	allowedSortFields := map[string]bool{
		"created_at": true,
	}
	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

var _ inventory.StockEntryRepository = (*GormStockEntryRepository)(nil)
