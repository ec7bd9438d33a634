package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	// SKU is the business identifier and must be unique
	existing, err := s.productRepo.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	if req.Barcode != "" {
		existing, err = s.productRepo.FindByBarcode(ctx, req.Barcode)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this barcode already exists")
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.BrandName, req.GenericName, req.Dosage, req.Form); err != nil {
		return nil, err
	}

	if req.Barcode != "" {
		if err := product.SetBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}

	cost := decimal.Zero
	if req.Cost != nil {
		cost = *req.Cost
	}
	if err := product.SetPrices(req.Price, cost); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		product.AssignCategory(*req.CategoryID)
	}
	product.SetPrescriptionRequired(req.RequiresPrescription)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetBySKU returns a product by its SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByBarcode returns a product by its barcode. Used by POS terminals
// scanning items at checkout.
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, req ProductListFilter) ([]ProductResponse, int64, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = strings.TrimSpace(req.Search)
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.CategoryID != nil {
		filter.Filters["category_id"] = *req.CategoryID
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product's descriptive details
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.BrandName, req.GenericName, req.Dosage, req.Form); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// UpdatePrices updates a product's selling price and cost
func (s *ProductService) UpdatePrices(ctx context.Context, id uuid.UUID, req UpdateProductPricesRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrices(req.Price, req.Cost); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Activate marks a product as sellable
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Activate()
	return s.productRepo.Save(ctx, product)
}

// Deactivate removes a product from sale without deleting its history
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}
