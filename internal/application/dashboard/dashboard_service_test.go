package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindBySeller(ctx context.Context, soldBy uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, soldBy, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByDateRange(ctx context.Context, branchID uuid.UUID, start, end time.Time, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, branchID, start, end, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindRecent(ctx context.Context, branchID *uuid.UUID, limit int) ([]sales.Sale, error) {
	args := m.Called(ctx, branchID, limit)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SumByBranchAndDateRange(ctx context.Context, branchID *uuid.UUID, start, end time.Time) (sales.SalesTotals, error) {
	args := m.Called(ctx, branchID, start, end)
	return args.Get(0).(sales.SalesTotals), args.Error(1)
}

// MockBranchStockRepository is a mock implementation of inventory.BranchStockRepository
type MockBranchStockRepository struct {
	mock.Mock
}

func (m *MockBranchStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.BranchStock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.BranchStock), args.Error(1)
}

func (m *MockBranchStockRepository) FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (*inventory.BranchStock, error) {
	args := m.Called(ctx, productID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.BranchStock), args.Error(1)
}

func (m *MockBranchStockRepository) FindByProductAndBranchForUpdate(ctx context.Context, productID, branchID uuid.UUID) (*inventory.BranchStock, error) {
	args := m.Called(ctx, productID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.BranchStock), args.Error(1)
}

func (m *MockBranchStockRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.BranchStock, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).([]inventory.BranchStock), args.Error(1)
}

func (m *MockBranchStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.BranchStock, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]inventory.BranchStock), args.Error(1)
}

func (m *MockBranchStockRepository) FindBelowReorder(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.BranchStock, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).([]inventory.BranchStock), args.Error(1)
}

func (m *MockBranchStockRepository) ExistsByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, branchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBranchStockRepository) Save(ctx context.Context, stock *inventory.BranchStock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockBranchStockRepository) SaveWithLock(ctx context.Context, stock *inventory.BranchStock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockBranchStockRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBranchStockRepository) CountBelowReorder(ctx context.Context, branchID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBranchStockRepository) CountOutOfStock(ctx context.Context, branchID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBranchStockRepository) SumStockByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
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
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
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

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type dashboardFixture struct {
	saleRepo    *MockSaleRepository
	stockRepo   *MockBranchStockRepository
	productRepo *MockProductRepository
	userRepo    *MockUserRepository
	service     *Service
}

func newDashboardFixture() *dashboardFixture {
	saleRepo := new(MockSaleRepository)
	stockRepo := new(MockBranchStockRepository)
	productRepo := new(MockProductRepository)
	userRepo := new(MockUserRepository)
	service := NewService(saleRepo, stockRepo, productRepo, userRepo, zap.NewNop())
	return &dashboardFixture{
		saleRepo:    saleRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		service:     service,
	}
}

func dashboardSale(branchID, soldBy uuid.UUID, amount string, soldAt time.Time) sales.Sale {
	sale, _ := sales.NewSale(branchID, soldBy)
	sale.TotalAmount = decimal.RequireFromString(amount)
	sale.SoldAt = soldAt
	return *sale
}

func TestService_Stats(t *testing.T) {
	t.Run("aggregates today's totals, stock alerts, and recent sales", func(t *testing.T) {
		f := newDashboardFixture()
		branchID := uuid.New()
		sellerID := uuid.New()

		seller := &identity.User{FirstName: "Maria", LastName: "Santos"}
		now := time.Now()
		recent := []sales.Sale{
			dashboardSale(branchID, sellerID, "250.00", now),
			dashboardSale(branchID, sellerID, "120.00", now.Add(-time.Hour)),
		}

		f.saleRepo.On("SumByBranchAndDateRange", mock.Anything, &branchID,
			mock.MatchedBy(func(start time.Time) bool {
				return start.Hour() == 0 && start.Minute() == 0 && start.Second() == 0
			}),
			mock.MatchedBy(func(end time.Time) bool {
				return end.Hour() == 0 && end.After(time.Now())
			}),
		).Return(sales.SalesTotals{
			TotalAmount:      decimal.RequireFromString("370.00"),
			TransactionCount: 2,
		}, nil)
		f.stockRepo.On("CountBelowReorder", mock.Anything, &branchID).Return(int64(4), nil)
		f.stockRepo.On("CountOutOfStock", mock.Anything, &branchID).Return(int64(1), nil)
		f.productRepo.On("Count", mock.Anything, mock.MatchedBy(func(filter shared.Filter) bool {
			return filter.Filters["status"] == string(catalog.ProductStatusActive)
		})).Return(int64(37), nil)
		f.saleRepo.On("FindRecent", mock.Anything, &branchID, recentSalesLimit).Return(recent, nil)
		// Both transactions share a seller, so the lookup happens once.
		f.userRepo.On("FindByID", mock.Anything, sellerID).Return(seller, nil).Once()

		stats, err := f.service.Stats(context.Background(), &branchID)

		require.NoError(t, err)
		assert.Equal(t, &branchID, stats.BranchID)
		assert.True(t, stats.TodaySales.Equal(decimal.RequireFromString("370.00")))
		assert.Equal(t, int64(2), stats.TodayTransactions)
		assert.Equal(t, int64(4), stats.LowStockCount)
		assert.Equal(t, int64(1), stats.OutOfStockCount)
		assert.Equal(t, int64(37), stats.ActiveProducts)
		require.Len(t, stats.RecentSales, 2)
		assert.Equal(t, "Maria Santos", stats.RecentSales[0].SellerName)
		assert.Equal(t, "Maria Santos", stats.RecentSales[1].SellerName)
		assert.True(t, stats.RecentSales[0].TotalAmount.Equal(decimal.RequireFromString("250.00")))
		f.saleRepo.AssertExpectations(t)
		f.stockRepo.AssertExpectations(t)
		f.productRepo.AssertExpectations(t)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("nil branch spans all branches", func(t *testing.T) {
		f := newDashboardFixture()

		f.saleRepo.On("SumByBranchAndDateRange", mock.Anything, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
			Return(sales.SalesTotals{TotalAmount: decimal.Zero}, nil)
		f.stockRepo.On("CountBelowReorder", mock.Anything, (*uuid.UUID)(nil)).Return(int64(0), nil)
		f.stockRepo.On("CountOutOfStock", mock.Anything, (*uuid.UUID)(nil)).Return(int64(0), nil)
		f.productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
		f.saleRepo.On("FindRecent", mock.Anything, (*uuid.UUID)(nil), recentSalesLimit).
			Return([]sales.Sale{}, nil)

		stats, err := f.service.Stats(context.Background(), nil)

		require.NoError(t, err)
		assert.Nil(t, stats.BranchID)
		assert.Empty(t, stats.RecentSales)
		f.saleRepo.AssertExpectations(t)
	})

	t.Run("degrades seller name when the lookup fails", func(t *testing.T) {
		f := newDashboardFixture()
		branchID := uuid.New()
		sellerID := uuid.New()

		f.saleRepo.On("SumByBranchAndDateRange", mock.Anything, &branchID, mock.Anything, mock.Anything).
			Return(sales.SalesTotals{TotalAmount: decimal.Zero}, nil)
		f.stockRepo.On("CountBelowReorder", mock.Anything, &branchID).Return(int64(0), nil)
		f.stockRepo.On("CountOutOfStock", mock.Anything, &branchID).Return(int64(0), nil)
		f.productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
		f.saleRepo.On("FindRecent", mock.Anything, &branchID, recentSalesLimit).
			Return([]sales.Sale{dashboardSale(branchID, sellerID, "99.00", time.Now())}, nil)
		f.userRepo.On("FindByID", mock.Anything, sellerID).Return(nil, shared.ErrNotFound)

		stats, err := f.service.Stats(context.Background(), &branchID)

		require.NoError(t, err)
		require.Len(t, stats.RecentSales, 1)
		assert.Empty(t, stats.RecentSales[0].SellerName)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		f := newDashboardFixture()
		branchID := uuid.New()

		f.saleRepo.On("SumByBranchAndDateRange", mock.Anything, &branchID, mock.Anything, mock.Anything).
			Return(sales.SalesTotals{}, errors.New("connection reset"))

		stats, err := f.service.Stats(context.Background(), &branchID)

		require.Error(t, err)
		assert.Nil(t, stats)
	})
}
