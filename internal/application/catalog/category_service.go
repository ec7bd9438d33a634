package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// CategoryService manages the category catalog. Names are unique and a
// category cannot be removed while products reference it.
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Create adds a category, rejecting duplicate names.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	switch _, err := s.categoryRepo.FindByName(ctx, req.Name); {
	case err == nil:
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List returns categories matching the search term, name-ordered.
func (s *CategoryService) List(ctx context.Context, search string) ([]CategoryResponse, error) {
	filter := shared.DefaultFilter()
	filter.Search = search

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Delete removes a category. Deletion is refused while products are still
// assigned to it.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	filter := shared.DefaultFilter()
	filter.Filters["category_id"] = id
	count, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has products assigned")
	}

	return s.categoryRepo.Delete(ctx, id)
}
