package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appinventory "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/dto"
)

type stockHandlerFixture struct {
	stockRepo   *MockBranchStockRepository
	entryRepo   *MockStockEntryRepository
	productRepo *MockProductRepository
	branchRepo  *MockBranchRepository
	engine      *gin.Engine
}

func newStockHandlerFixture(t *testing.T, userID uuid.UUID, role string) *stockHandlerFixture {
	t.Helper()
	stockRepo := new(MockBranchStockRepository)
	entryRepo := new(MockStockEntryRepository)
	productRepo := new(MockProductRepository)
	branchRepo := new(MockBranchRepository)

	scope := appinventory.NewNoOpTransactionScope(stockRepo, entryRepo)
	service := appinventory.NewLedgerService(stockRepo, entryRepo, productRepo, branchRepo, scope, zap.NewNop())

	return &stockHandlerFixture{
		stockRepo:   stockRepo,
		entryRepo:   entryRepo,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		engine:      newTestRouter(authAs(userID, role), NewStockHandler(service)),
	}
}

func (f *stockHandlerFixture) expectReferencesExist(productID, branchID uuid.UUID) {
	f.productRepo.On("ExistsByID", mock.Anything, productID).Return(true, nil)
	f.branchRepo.On("ExistsByID", mock.Anything, branchID).Return(true, nil)
}

func branchStockAt(t *testing.T, productID, branchID uuid.UUID, current int) *inventory.BranchStock {
	t.Helper()
	stock, err := inventory.NewBranchStock(productID, branchID)
	require.NoError(t, err)
	stock.CurrentStock = current
	return stock
}

func TestStockHandler_ApplyTransaction(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	branchID := uuid.New()

	t.Run("sale appends a ledger entry with snapshots", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")
		f.expectReferencesExist(productID, branchID)
		stock := branchStockAt(t, productID, branchID, 50)
		f.stockRepo.On("FindByProductAndBranchForUpdate", mock.Anything, productID, branchID).Return(stock, nil)
		f.stockRepo.On("Save", mock.Anything, stock).Return(nil)
		f.entryRepo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.StockEntry")).Return(nil)

		w := performRequest(t, f.engine, http.MethodPost, "/api/v1/stocks/transactions", gin.H{
			"product_id":       productID,
			"branch_id":        branchID,
			"transaction_type": "SALE",
			"quantity":         -45,
			"reason":           "walk-in sale",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := dataMap(t, resp)
		assert.Equal(t, float64(50), data["quantity_before"])
		assert.Equal(t, float64(5), data["quantity_after"])
		assert.Equal(t, float64(-45), data["quantity"])
		assert.Equal(t, userID.String(), data["performed_by"])
		f.entryRepo.AssertExpectations(t)
	})

	t.Run("insufficient stock returns 422", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")
		f.expectReferencesExist(productID, branchID)
		stock := branchStockAt(t, productID, branchID, 10)
		f.stockRepo.On("FindByProductAndBranchForUpdate", mock.Anything, productID, branchID).Return(stock, nil)

		w := performRequest(t, f.engine, http.MethodPost, "/api/v1/stocks/transactions", gin.H{
			"product_id":       productID,
			"branch_id":        branchID,
			"transaction_type": "SALE",
			"quantity":         -25,
		})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
		f.stockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.entryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")

		w := performRequest(t, f.engine, http.MethodPost, "/api/v1/stocks/transactions", gin.H{
			"transaction_type": "SALE",
		})

		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		f.stockRepo.AssertNotCalled(t, "FindByProductAndBranchForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStockHandler_GetStock(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	branchID := uuid.New()
	path := fmt.Sprintf("/api/v1/stocks?product_id=%s&branch_id=%s", productID, branchID)

	t.Run("returns the branch record", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")
		stock := branchStockAt(t, productID, branchID, 120)
		f.stockRepo.On("FindByProductAndBranch", mock.Anything, productID, branchID).Return(stock, nil)

		w := performRequest(t, f.engine, http.MethodGet, path, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := dataMap(t, decodeResponse(t, w))
		assert.Equal(t, float64(120), data["current_stock"])
		assert.Equal(t, productID.String(), data["product_id"])
	})

	t.Run("unknown pair returns 404", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")
		f.stockRepo.On("FindByProductAndBranch", mock.Anything, productID, branchID).Return(nil, shared.ErrNotFound)

		w := performRequest(t, f.engine, http.MethodGet, path, nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("rejects malformed product id", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")

		w := performRequest(t, f.engine, http.MethodGet, "/api/v1/stocks?product_id=abc&branch_id="+branchID.String(), nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})
}

func TestStockHandler_Transfer(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	fromBranch := uuid.New()
	toBranch := uuid.New()

	body := gin.H{
		"product_id":     productID,
		"from_branch_id": fromBranch,
		"to_branch_id":   toBranch,
		"quantity":       40,
	}

	t.Run("manager moves stock between branches", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "manager")
		f.productRepo.On("ExistsByID", mock.Anything, productID).Return(true, nil)
		f.branchRepo.On("ExistsByID", mock.Anything, fromBranch).Return(true, nil)
		f.branchRepo.On("ExistsByID", mock.Anything, toBranch).Return(true, nil)

		source := branchStockAt(t, productID, fromBranch, 100)
		f.stockRepo.On("FindByProductAndBranchForUpdate", mock.Anything, productID, fromBranch).Return(source, nil)
		f.stockRepo.On("FindByProductAndBranchForUpdate", mock.Anything, productID, toBranch).Return(nil, shared.ErrNotFound)
		f.stockRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.BranchStock")).Return(nil)
		f.entryRepo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.StockEntry")).Return(nil)

		w := performRequest(t, f.engine, http.MethodPost, "/api/v1/stocks/transfers", body)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		data := dataMap(t, decodeResponse(t, w))
		debit, ok := data["debit"].(map[string]any)
		require.True(t, ok)
		credit, ok := data["credit"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(-40), debit["quantity"])
		assert.Equal(t, float64(60), debit["quantity_after"])
		assert.Equal(t, float64(40), credit["quantity"])
		assert.Equal(t, float64(40), credit["quantity_after"])
		f.stockRepo.AssertExpectations(t)
	})

	t.Run("cashier is denied", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")

		w := performRequest(t, f.engine, http.MethodPost, "/api/v1/stocks/transfers", body)

		require.Equal(t, http.StatusForbidden, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
		f.stockRepo.AssertNotCalled(t, "FindByProductAndBranchForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same source and destination is rejected", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "admin")

		w := performRequest(t, f.engine, http.MethodPost, "/api/v1/stocks/transfers", gin.H{
			"product_id":     productID,
			"from_branch_id": fromBranch,
			"to_branch_id":   fromBranch,
			"quantity":       10,
		})

		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})
}

func TestStockHandler_CheckAvailability(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	branchID := uuid.New()

	t.Run("reports availability for a covered request", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")
		stock := branchStockAt(t, productID, branchID, 30)
		f.stockRepo.On("FindByProductAndBranch", mock.Anything, productID, branchID).Return(stock, nil)

		path := fmt.Sprintf("/api/v1/stocks/availability?product_id=%s&branch_id=%s&quantity=25", productID, branchID)
		w := performRequest(t, f.engine, http.MethodGet, path, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := dataMap(t, decodeResponse(t, w))
		assert.Equal(t, true, data["available"])
		assert.Equal(t, float64(30), data["current_stock"])
		assert.Equal(t, float64(25), data["requested"])
	})

	t.Run("missing record reads as unavailable", func(t *testing.T) {
		f := newStockHandlerFixture(t, userID, "cashier")
		f.stockRepo.On("FindByProductAndBranch", mock.Anything, productID, branchID).Return(nil, shared.ErrNotFound)

		path := fmt.Sprintf("/api/v1/stocks/availability?product_id=%s&branch_id=%s", productID, branchID)
		w := performRequest(t, f.engine, http.MethodGet, path, nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := dataMap(t, decodeResponse(t, w))
		assert.Equal(t, false, data["available"])
		assert.Equal(t, float64(0), data["current_stock"])
	})
}

func TestStockHandler_ListLowStock(t *testing.T) {
	userID := uuid.New()
	branchID := uuid.New()

	f := newStockHandlerFixture(t, userID, "manager")
	low := branchStockAt(t, uuid.New(), branchID, 3)
	f.stockRepo.On("FindBelowReorder", mock.Anything, branchID, mock.Anything).Return([]inventory.BranchStock{*low}, nil)

	w := performRequest(t, f.engine, http.MethodGet, "/api/v1/stocks/branches/"+branchID.String()+"/low", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	items, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	record, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), record["current_stock"])
}
