package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID, with line items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByBranch finds sales for a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindBySeller finds sales recorded by a user
	FindBySeller(ctx context.Context, soldBy uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindByDateRange finds sales within a time window
	FindByDateRange(ctx context.Context, branchID uuid.UUID, start, end time.Time, filter shared.Filter) ([]Sale, error)

	// FindRecent finds the most recent sales, newest first. A nil branchID
	// spans all branches
	FindRecent(ctx context.Context, branchID *uuid.UUID, limit int) ([]Sale, error)

	// Save creates or updates a sale and its line items
	Save(ctx context.Context, sale *Sale) error

	// CountByBranch counts sales for a branch
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)

	// SumByBranchAndDateRange returns the revenue total and transaction
	// count within a time window. A nil branchID spans all branches
	SumByBranchAndDateRange(ctx context.Context, branchID *uuid.UUID, start, end time.Time) (SalesTotals, error)
}

// SalesTotals aggregates revenue over a query window.
type SalesTotals struct {
	TotalAmount      decimal.Decimal
	TransactionCount int64
}
