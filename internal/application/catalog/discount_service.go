package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// DiscountService manages discount rules. Names are unique; a rule with
// no product associations applies shop-wide.
type DiscountService struct {
	discountRepo catalog.DiscountRepository
	productRepo  catalog.ProductRepository
}

func NewDiscountService(discountRepo catalog.DiscountRepository, productRepo catalog.ProductRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo, productRepo: productRepo}
}

// Create defines a discount rule, rejecting duplicate names.
func (s *DiscountService) Create(ctx context.Context, req CreateDiscountRequest) (*DiscountResponse, error) {
	switch _, err := s.discountRepo.FindByName(ctx, req.Name); {
	case err == nil:
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Discount with this name already exists")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	discount, err := catalog.NewDiscount(req.Name, req.Description, catalog.DiscountType(req.Type), req.Value)
	if err != nil {
		return nil, err
	}
	if err := discount.SetWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	discount.SetRequiresVerification(req.RequiresVerification)

	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}
	if len(req.ProductIDs) > 0 {
		if err := s.assignProducts(ctx, discount, req.ProductIDs); err != nil {
			return nil, err
		}
	}
	return ToDiscountResponse(discount), nil
}

func (s *DiscountService) Get(ctx context.Context, id uuid.UUID) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDiscountResponse(discount), nil
}

// List returns discounts matching the filter, name-ordered.
func (s *DiscountService) List(ctx context.Context, filter DiscountListFilter) ([]DiscountResponse, int64, error) {
	repoFilter := shared.DefaultFilter()
	repoFilter.Search = filter.Search
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.Type != "" {
		repoFilter.Filters["type"] = filter.Type
	}
	if filter.Enabled != nil {
		repoFilter.Filters["enabled"] = *filter.Enabled
	}

	discounts, err := s.discountRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.discountRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToDiscountResponses(discounts), total, nil
}

// Update replaces the rule's definition and, when ProductIDs is non-nil,
// its product associations.
func (s *DiscountService) Update(ctx context.Context, id uuid.UUID, req CreateDiscountRequest) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != discount.Name {
		switch _, err := s.discountRepo.FindByName(ctx, req.Name); {
		case err == nil:
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Discount with this name already exists")
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	if err := discount.Update(req.Name, req.Description, catalog.DiscountType(req.Type), req.Value); err != nil {
		return nil, err
	}
	if err := discount.SetWindow(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	discount.SetRequiresVerification(req.RequiresVerification)

	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}
	if req.ProductIDs != nil {
		if err := s.assignProducts(ctx, discount, req.ProductIDs); err != nil {
			return nil, err
		}
	}
	return ToDiscountResponse(discount), nil
}

// SetEnabled toggles the rule without touching its definition.
func (s *DiscountService) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enabled {
		discount.Enable()
	} else {
		discount.Disable()
	}
	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}
	return ToDiscountResponse(discount), nil
}

func (s *DiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.discountRepo.Delete(ctx, id)
}

// assignProducts validates every referenced product before replacing the
// associations. An empty list clears them, making the rule shop-wide.
func (s *DiscountService) assignProducts(ctx context.Context, discount *catalog.Discount, productIDs []uuid.UUID) error {
	products := make([]catalog.Product, 0, len(productIDs))
	for _, productID := range productIDs {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PRODUCT", "Product not found: "+productID.String())
			}
			return err
		}
		products = append(products, *product)
	}
	if err := s.discountRepo.ReplaceProducts(ctx, discount, products); err != nil {
		return err
	}
	discount.Products = products
	return nil
}
