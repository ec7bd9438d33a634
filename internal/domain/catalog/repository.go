package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByBarcode finds a product by its barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds products in a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// ExistsByID checks whether a product exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	// FindByID finds a branch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)

	// FindByCode finds a branch by its code
	FindByCode(ctx context.Context, code string) (*Branch, error)

	// FindAll finds branches matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, error)

	// FindActive finds all active branches
	FindActive(ctx context.Context) ([]Branch, error)

	// ExistsByID checks whether a branch exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a branch
	Save(ctx context.Context, branch *Branch) error

	// Delete deletes a branch
	Delete(ctx context.Context, id uuid.UUID) error
}

// DiscountRepository defines the interface for discount rule persistence
type DiscountRepository interface {
	// FindByID finds a discount by its ID, with product associations loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Discount, error)

	// FindByName finds a discount by its name
	FindByName(ctx context.Context, name string) (*Discount, error)

	// FindAll finds discounts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Discount, error)

	// FindActiveForProduct finds rules applicable to a product at the given
	// instant: enabled, inside their window, and either unassociated
	// (shop-wide) or associated with the product
	FindActiveForProduct(ctx context.Context, productID uuid.UUID, at time.Time) ([]Discount, error)

	// ReplaceProducts replaces the discount's product associations
	ReplaceProducts(ctx context.Context, discount *Discount, products []Product) error

	// Save creates or updates a discount
	Save(ctx context.Context, discount *Discount) error

	// Delete deletes a discount and its associations
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts discounts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
