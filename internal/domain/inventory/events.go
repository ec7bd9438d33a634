package inventory

import (
	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBranchStock = "BranchStock"

// Event type constants
const (
	EventTypeStockLevelChanged      = "StockLevelChanged"
	EventTypeStockBelowReorder      = "StockBelowReorder"
	EventTypeBranchStockInitialized = "BranchStockInitialized"
	EventTypeThresholdsUpdated      = "ThresholdsUpdated"
)

// StockLevelChangedEvent is raised after a ledger entry has been committed
// for a branch record.
type StockLevelChangedEvent struct {
	shared.BaseDomainEvent
	ProductID       uuid.UUID       `json:"product_id"`
	BranchID        uuid.UUID       `json:"branch_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Quantity        int             `json:"quantity"`
	QuantityBefore  int             `json:"quantity_before"`
	QuantityAfter   int             `json:"quantity_after"`
	Status          StockStatus     `json:"status"`
}

// NewStockLevelChangedEvent creates a new StockLevelChangedEvent
func NewStockLevelChangedEvent(stock *BranchStock, entry *StockEntry) *StockLevelChangedEvent {
	return &StockLevelChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockLevelChanged, AggregateTypeBranchStock, stock.ID),
		ProductID:       stock.ProductID,
		BranchID:        stock.BranchID,
		TransactionType: entry.TransactionType,
		Quantity:        entry.Quantity,
		QuantityBefore:  entry.QuantityBefore,
		QuantityAfter:   entry.QuantityAfter,
		Status:          stock.Status(),
	}
}

// EventType returns the event type name
func (e *StockLevelChangedEvent) EventType() string {
	return EventTypeStockLevelChanged
}

// StockBelowReorderEvent is raised when a committed mutation leaves the
// quantity at or below the reorder point.
type StockBelowReorderEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID   `json:"product_id"`
	BranchID     uuid.UUID   `json:"branch_id"`
	CurrentStock int         `json:"current_stock"`
	ReorderPoint int         `json:"reorder_point"`
	Status       StockStatus `json:"status"`
}

// NewStockBelowReorderEvent creates a new StockBelowReorderEvent
func NewStockBelowReorderEvent(stock *BranchStock) *StockBelowReorderEvent {
	return &StockBelowReorderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowReorder, AggregateTypeBranchStock, stock.ID),
		ProductID:       stock.ProductID,
		BranchID:        stock.BranchID,
		CurrentStock:    stock.CurrentStock,
		ReorderPoint:    stock.EffectiveReorderPoint(),
		Status:          stock.Status(),
	}
}

// EventType returns the event type name
func (e *StockBelowReorderEvent) EventType() string {
	return EventTypeStockBelowReorder
}

// BranchStockInitializedEvent is raised when a record is explicitly
// initialized with an opening balance.
type BranchStockInitializedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	BranchID     uuid.UUID `json:"branch_id"`
	InitialStock int       `json:"initial_stock"`
}

// NewBranchStockInitializedEvent creates a new BranchStockInitializedEvent
func NewBranchStockInitializedEvent(stock *BranchStock) *BranchStockInitializedEvent {
	return &BranchStockInitializedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBranchStockInitialized, AggregateTypeBranchStock, stock.ID),
		ProductID:       stock.ProductID,
		BranchID:        stock.BranchID,
		InitialStock:    stock.CurrentStock,
	}
}

// EventType returns the event type name
func (e *BranchStockInitializedEvent) EventType() string {
	return EventTypeBranchStockInitialized
}

// ThresholdsUpdatedEvent is raised when threshold configuration changes.
type ThresholdsUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	BranchID     uuid.UUID `json:"branch_id"`
	MinimumStock *int      `json:"minimum_stock,omitempty"`
	ReorderPoint *int      `json:"reorder_point,omitempty"`
	MaximumStock *int      `json:"maximum_stock,omitempty"`
}

// NewThresholdsUpdatedEvent creates a new ThresholdsUpdatedEvent
func NewThresholdsUpdatedEvent(stock *BranchStock) *ThresholdsUpdatedEvent {
	return &ThresholdsUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeThresholdsUpdated, AggregateTypeBranchStock, stock.ID),
		ProductID:       stock.ProductID,
		BranchID:        stock.BranchID,
		MinimumStock:    stock.MinimumStock,
		ReorderPoint:    stock.ReorderPoint,
		MaximumStock:    stock.MaximumStock,
	}
}

// EventType returns the event type name
func (e *ThresholdsUpdatedEvent) EventType() string {
	return EventTypeThresholdsUpdated
}
