package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
)

// BranchStockResponse represents a branch stock record in API responses
type BranchStockResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	BranchID     uuid.UUID `json:"branch_id"`
	CurrentStock int       `json:"current_stock"`
	MinimumStock int       `json:"minimum_stock"`
	ReorderPoint int       `json:"reorder_point"`
	MaximumStock *int      `json:"maximum_stock,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// StockEntryResponse represents a ledger entry in API responses
type StockEntryResponse struct {
	ID              uuid.UUID        `json:"id"`
	ProductID       uuid.UUID        `json:"product_id"`
	BranchID        uuid.UUID        `json:"branch_id"`
	TransactionType string           `json:"transaction_type"`
	Quantity        int              `json:"quantity"`
	QuantityBefore  int              `json:"quantity_before"`
	QuantityAfter   int              `json:"quantity_after"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost       *decimal.Decimal `json:"total_cost,omitempty"`
	BatchNumber     string           `json:"batch_number,omitempty"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`
	Supplier        string           `json:"supplier,omitempty"`
	Reason          string           `json:"reason,omitempty"`
	ReferenceID     *uuid.UUID       `json:"reference_id,omitempty"`
	ReferenceType   string           `json:"reference_type,omitempty"`
	PerformedBy     uuid.UUID        `json:"performed_by"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ApplyTransactionRequest represents a request to apply a stock mutation
type ApplyTransactionRequest struct {
	ProductID       uuid.UUID        `json:"product_id" binding:"required"`
	BranchID        uuid.UUID        `json:"branch_id" binding:"required"`
	TransactionType string           `json:"transaction_type" binding:"required"`
	Quantity        int              `json:"quantity" binding:"required"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	BatchNumber     string           `json:"batch_number"`
	ExpiryDate      *time.Time       `json:"expiry_date"`
	Supplier        string           `json:"supplier"`
	Reason          string           `json:"reason"`
	ReferenceID     *uuid.UUID       `json:"reference_id"`
	ReferenceType   string           `json:"reference_type"`
	PerformedBy     uuid.UUID        `json:"-"`
}

// Metadata builds the entry metadata from the request
func (r ApplyTransactionRequest) Metadata() inventory.EntryMetadata {
	return inventory.EntryMetadata{
		UnitCost:      r.UnitCost,
		BatchNumber:   r.BatchNumber,
		ExpiryDate:    r.ExpiryDate,
		Supplier:      r.Supplier,
		Reason:        r.Reason,
		ReferenceID:   r.ReferenceID,
		ReferenceType: r.ReferenceType,
	}
}

// TransferRequest represents a request to move stock between branches
type TransferRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	FromBranchID uuid.UUID `json:"from_branch_id" binding:"required"`
	ToBranchID   uuid.UUID `json:"to_branch_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
	Reason       string    `json:"reason"`
	PerformedBy  uuid.UUID `json:"-"`
}

// TransferResponse carries both legs of a completed transfer
type TransferResponse struct {
	Debit  StockEntryResponse `json:"debit"`
	Credit StockEntryResponse `json:"credit"`
}

// InitializeStockRequest represents a request to create a branch record with
// an opening balance
type InitializeStockRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	BranchID     uuid.UUID `json:"branch_id" binding:"required"`
	InitialStock int       `json:"initial_stock" binding:"min=0"`
	MinimumStock *int      `json:"minimum_stock"`
	ReorderPoint *int      `json:"reorder_point"`
	MaximumStock *int      `json:"maximum_stock"`
	PerformedBy  uuid.UUID `json:"-"`
}

// UpdateThresholdsRequest represents a threshold-only update
type UpdateThresholdsRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	BranchID     uuid.UUID `json:"branch_id" binding:"required"`
	MinimumStock *int      `json:"minimum_stock"`
	ReorderPoint *int      `json:"reorder_point"`
	MaximumStock *int      `json:"maximum_stock"`
}

// ProductStockResponse aggregates a product's stock across all branches
type ProductStockResponse struct {
	ProductID  uuid.UUID             `json:"product_id"`
	TotalStock int64                 `json:"total_stock"`
	Branches   []BranchStockResponse `json:"branches"`
}

// BranchStockSummaryResponse carries per-status counts for a branch
type BranchStockSummaryResponse struct {
	BranchID      uuid.UUID `json:"branch_id"`
	TotalProducts int64     `json:"total_products"`
	InStock       int       `json:"in_stock"`
	Low           int       `json:"low"`
	Critical      int       `json:"critical"`
	OutOfStock    int       `json:"out_of_stock"`
}

// LowStockAlertsResponse groups low-stock records by severity
type LowStockAlertsResponse struct {
	BranchID   uuid.UUID             `json:"branch_id"`
	OutOfStock []BranchStockResponse `json:"out_of_stock"`
	Critical   []BranchStockResponse `json:"critical"`
	Low        []BranchStockResponse `json:"low"`
}

// EntryListFilter represents filter options for ledger history queries
type EntryListFilter struct {
	TransactionType string     `form:"transaction_type"`
	StartDate       *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate         *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToBranchStockResponse converts a domain branch stock to a response DTO
func ToBranchStockResponse(stock *inventory.BranchStock) BranchStockResponse {
	return BranchStockResponse{
		ID:           stock.ID,
		ProductID:    stock.ProductID,
		BranchID:     stock.BranchID,
		CurrentStock: stock.CurrentStock,
		MinimumStock: stock.EffectiveMinimum(),
		ReorderPoint: stock.EffectiveReorderPoint(),
		MaximumStock: stock.MaximumStock,
		Status:       string(stock.Status()),
		CreatedAt:    stock.CreatedAt,
		UpdatedAt:    stock.UpdatedAt,
		Version:      stock.Version,
	}
}

// ToStockEntryResponse converts a domain ledger entry to a response DTO
func ToStockEntryResponse(entry *inventory.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:              entry.ID,
		ProductID:       entry.ProductID,
		BranchID:        entry.BranchID,
		TransactionType: entry.TransactionType.String(),
		Quantity:        entry.Quantity,
		QuantityBefore:  entry.QuantityBefore,
		QuantityAfter:   entry.QuantityAfter,
		UnitCost:        entry.UnitCost,
		TotalCost:       entry.TotalCost,
		BatchNumber:     entry.BatchNumber,
		ExpiryDate:      entry.ExpiryDate,
		Supplier:        entry.Supplier,
		Reason:          entry.Reason,
		ReferenceID:     entry.ReferenceID,
		ReferenceType:   entry.ReferenceType,
		PerformedBy:     entry.PerformedBy,
		CreatedAt:       entry.CreatedAt,
	}
}

// ToStockEntryResponses converts a slice of entries
func ToStockEntryResponses(entries []inventory.StockEntry) []StockEntryResponse {
	responses := make([]StockEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToStockEntryResponse(&entries[i])
	}
	return responses
}

// ToBranchStockResponses converts a slice of branch stock records
func ToBranchStockResponses(stocks []inventory.BranchStock) []BranchStockResponse {
	responses := make([]BranchStockResponse, len(stocks))
	for i := range stocks {
		responses[i] = ToBranchStockResponse(&stocks[i])
	}
	return responses
}
