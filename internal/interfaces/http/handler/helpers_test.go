package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/auth"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/dto"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// authAs injects an authenticated identity the way the JWT middleware would
func authAs(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{
			UserID:   userID.String(),
			Username: "tester",
			Role:     role,
		}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTUsernameKey, claims.Username)
		c.Set(middleware.JWTRoleKey, claims.Role)
		c.Next()
	}
}

func authAsBranchMember(userID uuid.UUID, role string, branchID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{
			UserID:   userID.String(),
			Username: "tester",
			Role:     role,
			BranchID: branchID.String(),
		}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTUsernameKey, claims.Username)
		c.Set(middleware.JWTRoleKey, claims.Role)
		c.Set(middleware.JWTBranchIDKey, claims.BranchID)
		c.Next()
	}
}

func newTestRouter(authMW gin.HandlerFunc, registrars ...router.RouteRegistrar) *gin.Engine {
	engine := gin.New()
	api := engine.Group("/api/v1")
	if authMW != nil {
		api.Use(authMW)
	}
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}
	return engine
}

func performRequest(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data is not an object")
	return m
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

// MockStockEntryRepository is a mock implementation of inventory.StockEntryRepository
type MockStockEntryRepository struct {
	mock.Mock
}

func (m *MockStockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, productID, branchID, filter)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindLatestByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (*inventory.StockEntry, error) {
	args := m.Called(ctx, productID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, referenceType, referenceID)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindByDateRange(ctx context.Context, branchID uuid.UUID, start, end time.Time, filter shared.Filter) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, branchID, start, end, filter)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindByType(ctx context.Context, branchID uuid.UUID, txType inventory.TransactionType, filter shared.Filter) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, branchID, txType, filter)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) Create(ctx context.Context, entry *inventory.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockEntryRepository) CreateBatch(ctx context.Context, entries []*inventory.StockEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockStockEntryRepository) CountByProductAndBranch(ctx context.Context, productID, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID, branchID)
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

// MockBranchRepository is a mock implementation of catalog.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindByCode(ctx context.Context, code string) (*catalog.Branch, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Branch, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindActive(ctx context.Context) ([]catalog.Branch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Branch), args.Error(1)
}

func (m *MockBranchRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBranchRepository) Save(ctx context.Context, branch *catalog.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
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
