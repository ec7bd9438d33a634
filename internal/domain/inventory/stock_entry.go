package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// TransactionType represents the type of stock ledger transaction
type TransactionType string

const (
	// TransactionTypeInitialStock records the opening balance of a branch record
	TransactionTypeInitialStock TransactionType = "INITIAL_STOCK"
	// TransactionTypePurchase represents stock received from a supplier
	TransactionTypePurchase TransactionType = "PURCHASE"
	// TransactionTypeSale represents stock sold to a customer
	TransactionTypeSale TransactionType = "SALE"
	// TransactionTypeReturn represents stock returned by a customer
	TransactionTypeReturn TransactionType = "RETURN"
	// TransactionTypeAdjustment represents a manual correction or a transfer leg
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
	// TransactionTypeDamage represents stock written off as damaged
	TransactionTypeDamage TransactionType = "DAMAGE"
	// TransactionTypeExpired represents stock written off past its expiry date
	TransactionTypeExpired TransactionType = "EXPIRED"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeInitialStock,
		TransactionTypePurchase,
		TransactionTypeSale,
		TransactionTypeReturn,
		TransactionTypeAdjustment,
		TransactionTypeDamage,
		TransactionTypeExpired:
		return true
	}
	return false
}

// RequiresReason returns true if entries of this type must carry a reason
func (t TransactionType) RequiresReason() bool {
	return t == TransactionTypeDamage || t == TransactionTypeExpired
}

// EntryMetadata carries the optional cost, batch and reference fields of a
// ledger entry. All fields may be empty except where the transaction type
// demands otherwise.
type EntryMetadata struct {
	UnitCost      *decimal.Decimal
	BatchNumber   string
	ExpiryDate    *time.Time
	Supplier      string
	Reason        string
	ReferenceID   *uuid.UUID
	ReferenceType string
}

// StockEntry represents an immutable record of a single stock mutation.
// Once created, entries are never updated or deleted - corrections are made
// with new entries.
type StockEntry struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID        `gorm:"type:uuid;not null;index:idx_stock_entry_history,priority:1"`
	BranchID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_stock_entry_history,priority:2"`
	TransactionType TransactionType  `gorm:"type:varchar(20);not null;index"`
	Quantity        int              `gorm:"not null"` // Signed delta, positive adds stock
	QuantityBefore  int              `gorm:"not null"`
	QuantityAfter   int              `gorm:"not null"`
	UnitCost        *decimal.Decimal `gorm:"type:decimal(18,4)"`
	TotalCost       *decimal.Decimal `gorm:"type:decimal(18,4)"`
	BatchNumber     string           `gorm:"type:varchar(50)"`
	ExpiryDate      *time.Time       `gorm:"type:timestamptz"`
	Supplier        string           `gorm:"type:varchar(100)"`
	Reason          string           `gorm:"type:varchar(255)"`
	ReferenceID     *uuid.UUID       `gorm:"type:uuid;index"`
	ReferenceType   string           `gorm:"type:varchar(30)"`
	PerformedBy     uuid.UUID        `gorm:"type:uuid;not null"`
	CreatedAt       time.Time        `gorm:"type:timestamptz;not null;index:idx_stock_entry_history,priority:3"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a new ledger entry. The before/after snapshots must
// already reflect the applied delta; the entry only records them.
func NewStockEntry(
	productID uuid.UUID,
	branchID uuid.UUID,
	txType TransactionType,
	quantity int,
	quantityBefore int,
	quantityAfter int,
	metadata EntryMetadata,
	performedBy uuid.UUID,
) (*StockEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be non-zero")
	}
	if quantityAfter != quantityBefore+quantity {
		return nil, shared.NewDomainError("INVALID_SNAPSHOT", "Quantity snapshots do not match the applied delta")
	}
	if quantityAfter < 0 || quantityBefore < 0 {
		return nil, shared.NewDomainError("INVALID_SNAPSHOT", "Quantity snapshots cannot be negative")
	}
	if performedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Performed by is required")
	}
	if txType.RequiresReason() && metadata.Reason == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A reason is required for "+txType.String()+" entries")
	}
	if metadata.UnitCost != nil && metadata.UnitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	entry := &StockEntry{
		ID:              uuid.New(),
		ProductID:       productID,
		BranchID:        branchID,
		TransactionType: txType,
		Quantity:        quantity,
		QuantityBefore:  quantityBefore,
		QuantityAfter:   quantityAfter,
		BatchNumber:     metadata.BatchNumber,
		ExpiryDate:      metadata.ExpiryDate,
		Supplier:        metadata.Supplier,
		Reason:          metadata.Reason,
		ReferenceID:     metadata.ReferenceID,
		ReferenceType:   metadata.ReferenceType,
		PerformedBy:     performedBy,
		CreatedAt:       time.Now(),
	}

	if metadata.UnitCost != nil {
		unitCost := *metadata.UnitCost
		absQuantity := quantity
		if absQuantity < 0 {
			absQuantity = -absQuantity
		}
		totalCost := unitCost.Mul(decimal.NewFromInt(int64(absQuantity)))
		entry.UnitCost = &unitCost
		entry.TotalCost = &totalCost
	}

	return entry, nil
}

// IsIncrease returns true if this entry added stock
func (e *StockEntry) IsIncrease() bool {
	return e.Quantity > 0
}

// IsDecrease returns true if this entry removed stock
func (e *StockEntry) IsDecrease() bool {
	return e.Quantity < 0
}

// AbsQuantity returns the magnitude of the applied delta
func (e *StockEntry) AbsQuantity() int {
	if e.Quantity < 0 {
		return -e.Quantity
	}
	return e.Quantity
}
