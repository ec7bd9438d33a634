package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Sale represents a completed point-of-sale transaction at a branch.
// It is the aggregate root for sale operations; line items only exist
// within a sale.
type Sale struct {
	shared.BaseAggregateRoot
	BranchID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Total before discounts
	TotalDiscount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Final amount after discounts
	CashAmount    decimal.Decimal `gorm:"type:decimal(10,2)"`          // Cash received from customer
	ChangeAmount  decimal.Decimal `gorm:"type:decimal(10,2)"`          // Change given to customer
	SoldBy        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SoldAt        time.Time       `gorm:"type:timestamptz;not null;index"`

	Items []SaleItem `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents a single product line within a sale.
type SaleItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        int             `gorm:"not null"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Unit price at time of sale
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(10,2)"`          // Unit price after discount
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// LineTotal returns the amount charged for this line
func (i *SaleItem) LineTotal() decimal.Decimal {
	return i.DiscountedPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewSale starts an empty sale for a branch and seller
func NewSale(branchID, soldBy uuid.UUID) (*Sale, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if soldBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Seller is required")
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		Subtotal:          decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalAmount:       decimal.Zero,
		SoldBy:            soldBy,
		SoldAt:            time.Now(),
		Items:             make([]SaleItem, 0),
	}, nil
}

// AddItem appends a product line and recalculates totals.
// discountPerUnit reduces the unit price; zero means no discount.
func (s *Sale) AddItem(productID uuid.UUID, quantity int, price, discountPerUnit decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if discountPerUnit.IsNegative() || discountPerUnit.GreaterThan(price) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between zero and the unit price")
	}

	qty := decimal.NewFromInt(int64(quantity))
	item := SaleItem{
		ID:              uuid.New(),
		SaleID:          s.ID,
		ProductID:       productID,
		Quantity:        quantity,
		Price:           price,
		DiscountedPrice: price.Sub(discountPerUnit),
		DiscountAmount:  discountPerUnit.Mul(qty),
	}
	s.Items = append(s.Items, item)

	s.Subtotal = s.Subtotal.Add(price.Mul(qty))
	s.TotalDiscount = s.TotalDiscount.Add(item.DiscountAmount)
	s.TotalAmount = s.Subtotal.Sub(s.TotalDiscount)
	s.UpdatedAt = time.Now()

	return nil
}

// SetPayment records the cash tendered and computes the change
func (s *Sale) SetPayment(cashAmount decimal.Decimal) error {
	if cashAmount.LessThan(s.TotalAmount) {
		return shared.NewDomainError("INSUFFICIENT_PAYMENT", "Cash amount does not cover the total")
	}

	s.CashAmount = cashAmount
	s.ChangeAmount = cashAmount.Sub(s.TotalAmount)
	s.UpdatedAt = time.Now()

	return nil
}

// IsEmpty returns true if the sale has no line items
func (s *Sale) IsEmpty() bool {
	return len(s.Items) == 0
}

// TotalQuantity returns the total number of units across line items
func (s *Sale) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}
