package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// DiscountType determines how a discount value is interpreted.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixedAmount
}

var percentCeiling = decimal.NewFromInt(100)

// Discount is a pricing rule applied at checkout (e.g. "Senior Citizen
// Discount", "PWD Discount"). A discount with no product associations
// applies to every product; otherwise only to the associated ones.
// Discounts never come from the client; the sale flow resolves active
// rules server-side.
type Discount struct {
	shared.BaseAggregateRoot
	Name                 string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description          string          `gorm:"type:varchar(255)"`
	Type                 DiscountType    `gorm:"type:varchar(20);not null"`
	Value                decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Percentage (0-100) or peso amount
	Enabled              bool            `gorm:"not null;default:true"`
	RequiresVerification bool            `gorm:"not null;default:false"` // ID check at the counter (PWD, senior)
	StartDate            *time.Time      `gorm:"type:timestamptz;index"` // nil starts immediately
	EndDate              *time.Time      `gorm:"type:timestamptz;index"` // nil never expires

	Products []Product `gorm:"many2many:product_discounts"`
}

func (Discount) TableName() string { return "discounts" }

// touch stamps a mutation for optimistic locking.
func (d *Discount) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

func validateDiscountValue(discountType DiscountType, value decimal.Decimal) error {
	switch {
	case !discountType.IsValid():
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be PERCENTAGE or FIXED_AMOUNT")
	case value.IsNegative():
		return shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Discount value cannot be negative")
	case discountType == DiscountTypePercentage && value.GreaterThan(percentCeiling):
		return shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Percentage discount cannot exceed 100")
	}
	return nil
}

func validateDiscountWindow(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Start date must be before end date")
	}
	return nil
}

// NewDiscount validates the rule and returns an enabled discount.
func NewDiscount(name, description string, discountType DiscountType, value decimal.Decimal) (*Discount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Discount name cannot exceed 100 characters")
	}
	if err := validateDiscountValue(discountType, value); err != nil {
		return nil, err
	}

	return &Discount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Type:              discountType,
		Value:             value,
		Enabled:           true,
	}, nil
}

// Update changes the rule's identity and value.
func (d *Discount) Update(name, description string, discountType DiscountType, value decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Discount name cannot exceed 100 characters")
	}
	if err := validateDiscountValue(discountType, value); err != nil {
		return err
	}
	d.Name = name
	d.Description = description
	d.Type = discountType
	d.Value = value
	d.touch()
	return nil
}

// SetWindow sets the validity window. Nil start means immediately active,
// nil end means indefinite.
func (d *Discount) SetWindow(start, end *time.Time) error {
	if err := validateDiscountWindow(start, end); err != nil {
		return err
	}
	d.StartDate = start
	d.EndDate = end
	d.touch()
	return nil
}

// SetRequiresVerification toggles the counter ID check.
func (d *Discount) SetRequiresVerification(required bool) {
	d.RequiresVerification = required
	d.touch()
}

// Enable turns the rule back on.
func (d *Discount) Enable() {
	d.Enabled = true
	d.touch()
}

// Disable turns the rule off without deleting it.
func (d *Discount) Disable() {
	d.Enabled = false
	d.touch()
}

// ActiveAt reports whether the rule applies at the given instant.
func (d *Discount) ActiveAt(t time.Time) bool {
	switch {
	case !d.Enabled:
		return false
	case d.StartDate != nil && t.Before(*d.StartDate):
		return false
	case d.EndDate != nil && t.After(*d.EndDate):
		return false
	}
	return true
}

// AmountFor returns the per-unit deduction for the given price, rounded
// to 2 places. A fixed amount is capped at the price so the discounted
// price never goes negative.
func (d *Discount) AmountFor(price decimal.Decimal) decimal.Decimal {
	if price.IsNegative() || price.IsZero() {
		return decimal.Zero
	}
	if d.Type == DiscountTypePercentage {
		return price.Mul(d.Value).Div(percentCeiling).Round(2)
	}
	return decimal.Min(d.Value, price).Round(2)
}
