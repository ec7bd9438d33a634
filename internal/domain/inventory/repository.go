package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// BranchStockRepository defines the interface for branch stock persistence
type BranchStockRepository interface {
	// FindByID finds a branch stock record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*BranchStock, error)

	// FindByProductAndBranch finds the record for a product-branch pair
	FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (*BranchStock, error)

	// FindByProductAndBranchForUpdate finds the record and takes a row lock;
	// only meaningful inside a transaction scope
	FindByProductAndBranchForUpdate(ctx context.Context, productID, branchID uuid.UUID) (*BranchStock, error)

	// FindByBranch finds all records for a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]BranchStock, error)

	// FindByProduct finds all records for a product across branches
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]BranchStock, error)

	// FindBelowReorder finds records at or below their reorder point
	FindBelowReorder(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]BranchStock, error)

	// ExistsByProductAndBranch checks whether a record exists for the pair
	ExistsByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (bool, error)

	// Save creates or updates a branch stock record
	Save(ctx context.Context, stock *BranchStock) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, stock *BranchStock) error

	// CountByBranch counts records for a branch
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)

	// CountBelowReorder counts records at or below their reorder point.
	// A nil branchID spans all branches
	CountBelowReorder(ctx context.Context, branchID *uuid.UUID) (int64, error)

	// CountOutOfStock counts records with nothing on hand. A nil branchID
	// spans all branches
	CountOutOfStock(ctx context.Context, branchID *uuid.UUID) (int64, error)

	// SumStockByProduct sums current stock for a product across branches
	SumStockByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// StockEntryRepository defines the interface for ledger entry persistence.
// The ledger is append-only; no update or delete operations exist.
type StockEntryRepository interface {
	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockEntry, error)

	// FindByProductAndBranch finds entries for a product-branch pair,
	// newest first
	FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID, filter shared.Filter) ([]StockEntry, error)

	// FindLatestByProductAndBranch finds the most recently created entry
	// for a product-branch pair
	FindLatestByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (*StockEntry, error)

	// FindByBranch finds entries for a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]StockEntry, error)

	// FindByReference finds entries linked to a source document
	FindByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]StockEntry, error)

	// FindByDateRange finds entries created within a time window
	FindByDateRange(ctx context.Context, branchID uuid.UUID, start, end time.Time, filter shared.Filter) ([]StockEntry, error)

	// FindByType finds entries of a given transaction type
	FindByType(ctx context.Context, branchID uuid.UUID, txType TransactionType, filter shared.Filter) ([]StockEntry, error)

	// Create appends a new entry
	Create(ctx context.Context, entry *StockEntry) error

	// CreateBatch appends multiple entries
	CreateBatch(ctx context.Context, entries []*StockEntry) error

	// CountByProductAndBranch counts entries for a product-branch pair
	CountByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (int64, error)
}

// EntryFilter extends shared.Filter with ledger-specific filters
type EntryFilter struct {
	shared.Filter
	ProductID       *uuid.UUID
	BranchID        *uuid.UUID
	TransactionType *TransactionType
	PerformedBy     *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
}
