package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	return NewProductService(productRepo, categoryRepo), productRepo, categoryRepo
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with prices and category", func(t *testing.T) {
		svc, productRepo, categoryRepo := newProductService()

		categoryID := uuid.New()
		category, err := catalog.NewCategory("Analgesics", "")
		require.NoError(t, err)

		productRepo.On("FindBySKU", ctx, "MED-001").Return(nil, shared.ErrNotFound)
		productRepo.On("FindByBarcode", ctx, "4800001234567").Return(nil, shared.ErrNotFound)
		categoryRepo.On("FindByID", ctx, categoryID).Return(category, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		cost := decimal.RequireFromString("3.25")
		resp, err := svc.Create(ctx, CreateProductRequest{
			SKU:        "med-001",
			Barcode:    "4800001234567",
			Name:       "Paracetamol 500mg",
			BrandName:  "Biogesic",
			Price:      decimal.RequireFromString("5.50"),
			Cost:       &cost,
			CategoryID: &categoryID,
		})

		require.NoError(t, err)
		assert.Equal(t, "MED-001", resp.SKU)
		assert.Equal(t, "Paracetamol 500mg", resp.Name)
		assert.True(t, resp.Price.Equal(decimal.RequireFromString("5.50")))
		assert.True(t, resp.Cost.Equal(cost))
		assert.Equal(t, &categoryID, resp.CategoryID)
		assert.Equal(t, "ACTIVE", resp.Status)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		svc, productRepo, _ := newProductService()

		existing, err := catalog.NewProduct("MED-001", "Existing", decimal.NewFromInt(1))
		require.NoError(t, err)
		productRepo.On("FindBySKU", ctx, "MED-001").Return(existing, nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			SKU:   "MED-001",
			Name:  "Duplicate",
			Price: decimal.NewFromInt(5),
		})

		assert.Nil(t, resp)
		assert.Equal(t, "ALREADY_EXISTS", shared.ErrorCode(err))
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc, productRepo, categoryRepo := newProductService()

		categoryID := uuid.New()
		productRepo.On("FindBySKU", ctx, "MED-002").Return(nil, shared.ErrNotFound)
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		resp, err := svc.Create(ctx, CreateProductRequest{
			SKU:        "MED-002",
			Name:       "Amoxicillin 500mg",
			Price:      decimal.NewFromInt(12),
			CategoryID: &categoryID,
		})

		assert.Nil(t, resp)
		assert.Equal(t, "INVALID_CATEGORY", shared.ErrorCode(err))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		svc, productRepo, _ := newProductService()

		productRepo.On("FindBySKU", ctx, "MED-003").Return(nil, shared.ErrNotFound)

		resp, err := svc.Create(ctx, CreateProductRequest{
			SKU:   "MED-003",
			Name:  "Bad price",
			Price: decimal.NewFromInt(-1),
		})

		assert.Nil(t, resp)
		assert.Equal(t, "INVALID_PRICE", shared.ErrorCode(err))
	})
}

func TestProductService_GetByBarcode(t *testing.T) {
	ctx := context.Background()

	t.Run("finds product by barcode", func(t *testing.T) {
		svc, productRepo, _ := newProductService()

		product, err := catalog.NewProduct("MED-001", "Paracetamol 500mg", decimal.NewFromInt(5))
		require.NoError(t, err)
		require.NoError(t, product.SetBarcode("4800001234567"))

		productRepo.On("FindByBarcode", ctx, "4800001234567").Return(product, nil)

		resp, err := svc.GetByBarcode(ctx, "4800001234567")

		require.NoError(t, err)
		assert.Equal(t, "MED-001", resp.SKU)
	})

	t.Run("returns not found for unknown barcode", func(t *testing.T) {
		svc, productRepo, _ := newProductService()

		productRepo.On("FindByBarcode", ctx, "0000000000000").Return(nil, shared.ErrNotFound)

		resp, err := svc.GetByBarcode(ctx, "0000000000000")

		assert.Nil(t, resp)
		assert.Equal(t, "NOT_FOUND", shared.ErrorCode(err))
	})
}

func TestProductService_UpdatePrices(t *testing.T) {
	ctx := context.Background()

	t.Run("updates prices", func(t *testing.T) {
		svc, productRepo, _ := newProductService()

		product, err := catalog.NewProduct("MED-001", "Paracetamol 500mg", decimal.NewFromInt(5))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		resp, err := svc.UpdatePrices(ctx, product.ID, UpdateProductPricesRequest{
			Price: decimal.RequireFromString("6.75"),
			Cost:  decimal.RequireFromString("4.00"),
		})

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(decimal.RequireFromString("6.75")))
		assert.True(t, resp.Cost.Equal(decimal.RequireFromString("4.00")))
	})
}

func TestProductService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates product", func(t *testing.T) {
		svc, productRepo, _ := newProductService()

		product, err := catalog.NewProduct("MED-001", "Paracetamol 500mg", decimal.NewFromInt(5))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		err = svc.Deactivate(ctx, product.ID)

		require.NoError(t, err)
		assert.False(t, product.IsActive())
	})
}
