package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
)

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	BranchID   uuid.UUID         `json:"branch_id" binding:"required"`
	Items      []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
	CashAmount decimal.Decimal   `json:"cash_amount" binding:"required"`
	SoldBy     uuid.UUID         `json:"-"`
}

// SaleLineRequest represents a single cart line. Prices and discounts come
// from the catalog and its active discount rules, never from the client.
type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// SaleResponse represents a completed sale in API responses
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	BranchID      uuid.UUID          `json:"branch_id"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	CashAmount    decimal.Decimal    `json:"cash_amount"`
	ChangeAmount  decimal.Decimal    `json:"change_amount"`
	SoldBy        uuid.UUID          `json:"sold_by"`
	SoldAt        time.Time          `json:"sold_at"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// SaleListFilter represents filter options for sale history queries
type SaleListFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	SoldBy    *uuid.UUID `form:"sold_by"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SaleCompletedNotification is published after a sale commits
type SaleCompletedNotification struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	SoldBy      uuid.UUID       `json:"sold_by"`
}

// ToSaleResponse converts a domain sale to a response DTO
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			Price:           item.Price,
			DiscountedPrice: item.DiscountedPrice,
			DiscountAmount:  item.DiscountAmount,
			LineTotal:       item.LineTotal(),
		}
	}
	return SaleResponse{
		ID:            sale.ID,
		BranchID:      sale.BranchID,
		Subtotal:      sale.Subtotal,
		TotalDiscount: sale.TotalDiscount,
		TotalAmount:   sale.TotalAmount,
		CashAmount:    sale.CashAmount,
		ChangeAmount:  sale.ChangeAmount,
		SoldBy:        sale.SoldBy,
		SoldAt:        sale.SoldAt,
		Items:         items,
	}
}

// ToSaleResponses converts a slice of sales
func ToSaleResponses(records []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(records))
	for i := range records {
		responses[i] = ToSaleResponse(&records[i])
	}
	return responses
}
