package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Default thresholds applied when a record is created lazily or without
// explicit values.
const (
	DefaultMinimumStock = 10
	DefaultReorderPoint = 20
)

// StockStatus is the derived stock level classification for a branch record.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StockStatusCritical   StockStatus = "CRITICAL"
	StockStatusLow        StockStatus = "LOW"
	StockStatusInStock    StockStatus = "IN_STOCK"
)

// BranchStock represents the current stock level of a product at a branch.
// It is the aggregate root for stock operations. The composite identifier
// is ProductID + BranchID; exactly one record exists per pair.
type BranchStock struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_stock_product_branch,priority:1"`
	BranchID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_stock_product_branch,priority:2"`
	CurrentStock int       `gorm:"not null;default:0"`
	MinimumStock *int      `gorm:""`
	ReorderPoint *int      `gorm:""`
	MaximumStock *int      `gorm:""`
}

// TableName returns the table name for GORM
func (BranchStock) TableName() string {
	return "branch_stocks"
}

// NewBranchStock creates a new branch stock record at zero quantity with
// default thresholds.
func NewBranchStock(productID, branchID uuid.UUID) (*BranchStock, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	minimum := DefaultMinimumStock
	reorder := DefaultReorderPoint
	return &BranchStock{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		BranchID:          branchID,
		CurrentStock:      0,
		MinimumStock:      &minimum,
		ReorderPoint:      &reorder,
	}, nil
}

// EffectiveMinimum returns the minimum stock threshold, falling back to the
// default when none is configured.
func (s *BranchStock) EffectiveMinimum() int {
	if s.MinimumStock == nil {
		return DefaultMinimumStock
	}
	return *s.MinimumStock
}

// EffectiveReorderPoint returns the reorder point, falling back to the
// default when none is configured.
func (s *BranchStock) EffectiveReorderPoint() int {
	if s.ReorderPoint == nil {
		return DefaultReorderPoint
	}
	return *s.ReorderPoint
}

// Status derives the stock level classification from the current quantity
// and thresholds. It is never stored.
func (s *BranchStock) Status() StockStatus {
	switch {
	case s.CurrentStock <= 0:
		return StockStatusOutOfStock
	case s.CurrentStock <= s.EffectiveMinimum():
		return StockStatusCritical
	case s.CurrentStock <= s.EffectiveReorderPoint():
		return StockStatusLow
	default:
		return StockStatusInStock
	}
}

// ApplyDelta applies a signed quantity change to the record and returns the
// before/after snapshot. The record is left untouched when the change would
// drive the quantity negative.
func (s *BranchStock) ApplyDelta(quantity int) (before, after int, err error) {
	if quantity == 0 {
		return s.CurrentStock, s.CurrentStock, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be non-zero")
	}

	before = s.CurrentStock
	after = before + quantity
	if after < 0 {
		return before, before, shared.NewInsufficientStockError(s.ProductID.String(), s.BranchID.String(), before, -quantity)
	}

	s.CurrentStock = after
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return before, after, nil
}

// SetThresholds updates threshold configuration. Nil arguments leave the
// corresponding threshold unchanged; quantity is never touched.
func (s *BranchStock) SetThresholds(minimum, maximum, reorder *int) error {
	if minimum != nil && *minimum < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum stock cannot be negative")
	}
	if maximum != nil && *maximum < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Maximum stock cannot be negative")
	}
	if reorder != nil && *reorder < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Reorder point cannot be negative")
	}

	if minimum != nil {
		s.MinimumStock = minimum
	}
	if maximum != nil {
		s.MaximumStock = maximum
	}
	if reorder != nil {
		s.ReorderPoint = reorder
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsBelowReorderPoint returns true if the current quantity is at or below
// the reorder point.
func (s *BranchStock) IsBelowReorderPoint() bool {
	return s.CurrentStock <= s.EffectiveReorderPoint()
}

// CanFulfill returns true if the current quantity covers the requested amount.
func (s *BranchStock) CanFulfill(quantity int) bool {
	return s.CurrentStock >= quantity
}
