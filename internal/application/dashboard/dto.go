package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatsResponse is the aggregated snapshot behind the dashboard screen.
// A nil BranchID means the numbers span every branch.
type StatsResponse struct {
	BranchID          *uuid.UUID      `json:"branch_id,omitempty"`
	TodaySales        decimal.Decimal `json:"today_sales"`
	TodayTransactions int64           `json:"today_transactions"`
	LowStockCount     int64           `json:"low_stock_count"`
	OutOfStockCount   int64           `json:"out_of_stock_count"`
	ActiveProducts    int64           `json:"active_products"`
	RecentSales       []RecentSale    `json:"recent_sales"`
}

// RecentSale is a compact sale row for the dashboard's activity feed.
type RecentSale struct {
	ID          uuid.UUID       `json:"id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SoldAt      time.Time       `json:"sold_at"`
	SoldBy      uuid.UUID       `json:"sold_by"`
	SellerName  string          `json:"seller_name"`
}
