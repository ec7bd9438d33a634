package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Product represents a pharmacy product/SKU in the catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	SKU                  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Barcode              string          `gorm:"type:varchar(50);index"`
	Name                 string          `gorm:"type:varchar(200);not null"`
	Description          string          `gorm:"type:text"`
	BrandName            string          `gorm:"type:varchar(100)"`
	GenericName          string          `gorm:"type:varchar(100);index"`
	Dosage               string          `gorm:"type:varchar(50)"`
	Form                 string          `gorm:"type:varchar(50)"` // tablet, capsule, syrup, etc.
	RequiresPrescription bool            `gorm:"not null;default:false"`
	Price                decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Selling price
	Cost                 decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // Acquisition cost
	CategoryID           *uuid.UUID      `gorm:"type:uuid;index"`
	Status               ProductStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

func (Product) TableName() string { return "products" }

// touch stamps a mutation for optimistic locking.
func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// NewProduct validates the identifiers and returns an active product.
// SKUs are stored uppercase.
func NewProduct(sku, name string, price decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Price:             price,
		Cost:              decimal.Zero,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update replaces the descriptive fields and records an update event.
func (p *Product) Update(name, description, brandName, genericName, dosage, form string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.BrandName = brandName
	p.GenericName = genericName
	p.Dosage = dosage
	p.Form = form
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets the selling price and acquisition cost; neither may be
// negative.
func (p *Product) SetPrices(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	p.Price = price
	p.Cost = cost
	p.touch()

	return nil
}

func (p *Product) SetBarcode(barcode string) error {
	if len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.touch()

	return nil
}

func (p *Product) AssignCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
	p.touch()
}

func (p *Product) SetPrescriptionRequired(required bool) {
	p.RequiresPrescription = required
	p.touch()
}

func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.touch()
}

func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.touch()
}

// IsActive reports whether the product can be sold.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// MarginAmount is the per-unit margin.
func (p *Product) MarginAmount() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// MarginPercentage is the margin relative to cost, rounded to 2 places.
// A zero cost yields zero rather than dividing by it.
func (p *Product) MarginPercentage() decimal.Decimal {
	if p.Cost.IsZero() {
		return decimal.Zero
	}
	return p.MarginAmount().Div(p.Cost).Mul(decimal.NewFromInt(100)).Round(2)
}

func validateSKU(sku string) error {
	switch {
	case sku == "":
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	case len(sku) > 50:
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	switch {
	case name == "":
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	case len(name) > 200:
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
