package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinventory "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// StockHandler exposes the branch stock ledger over HTTP
type StockHandler struct {
	BaseHandler
	service *appinventory.LedgerService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service *appinventory.LedgerService) *StockHandler {
	return &StockHandler{service: service}
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stocks := rg.Group("/stocks")
	{
		stocks.POST("", h.Initialize)
		stocks.GET("", h.GetStock)
		stocks.PUT("/thresholds", h.UpdateThresholds)
		stocks.POST("/transactions", h.ApplyTransaction)
		stocks.POST("/transfers", middleware.RequireAnyRole("admin", "manager"), h.Transfer)
		stocks.GET("/availability", h.CheckAvailability)
		stocks.GET("/entries", h.ListEntries)
		stocks.GET("/entries/:id", h.GetEntry)
		stocks.GET("/branches/:branchId", h.ListByBranch)
		stocks.GET("/branches/:branchId/low", h.ListLowStock)
		stocks.GET("/branches/:branchId/summary", h.GetBranchSummary)
		stocks.GET("/branches/:branchId/alerts", h.LowStockAlerts)
		stocks.GET("/products/:productId", h.GetProductStock)
	}
}

// Initialize creates a branch stock record with an opening balance
// POST /api/v1/stocks
func (h *StockHandler) Initialize(c *gin.Context) {
	var req appinventory.InitializeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.PerformedBy = userID

	stock, err := h.service.Initialize(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, stock)
}

// GetStock returns a single branch stock record
// GET /api/v1/stocks?product_id=...&branch_id=...
func (h *StockHandler) GetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch_id")
		return
	}

	stock, err := h.service.GetStock(c.Request.Context(), productID, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// UpdateThresholds updates the reorder thresholds of a branch stock record
// PUT /api/v1/stocks/thresholds
func (h *StockHandler) UpdateThresholds(c *gin.Context) {
	var req appinventory.UpdateThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	stock, err := h.service.UpdateThresholds(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// ApplyTransaction applies a stock mutation and appends a ledger entry
// POST /api/v1/stocks/transactions
func (h *StockHandler) ApplyTransaction(c *gin.Context) {
	var req appinventory.ApplyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.PerformedBy = userID

	entry, err := h.service.ApplyTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// Transfer moves stock between two branches atomically
// POST /api/v1/stocks/transfers
func (h *StockHandler) Transfer(c *gin.Context) {
	var req appinventory.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.PerformedBy = userID

	result, err := h.service.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// CheckAvailability reports whether a branch can cover a requested quantity
// GET /api/v1/stocks/availability?product_id=...&branch_id=...&quantity=...
func (h *StockHandler) CheckAvailability(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch_id")
		return
	}
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity < 1 {
		h.BadRequest(c, "Invalid quantity")
		return
	}

	available, current, err := h.service.CheckAvailability(c.Request.Context(), productID, branchID, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"available":     available,
		"current_stock": current,
		"requested":     quantity,
	})
}

// ListEntries returns the ledger history for a product at a branch
// GET /api/v1/stocks/entries?product_id=...&branch_id=...
func (h *StockHandler) ListEntries(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch_id")
		return
	}

	var filter appinventory.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	entries, err := h.service.ListEntries(c.Request.Context(), productID, branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetEntry returns a single ledger entry
// GET /api/v1/stocks/entries/:id
func (h *StockHandler) GetEntry(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// ListByBranch returns all stock records for a branch
// GET /api/v1/stocks/branches/:branchId
func (h *StockHandler) ListByBranch(c *gin.Context) {
	branchID, ok := parseUUIDParam(c, "branchId")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := toFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	stocks, err := h.service.ListByBranch(c.Request.Context(), branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stocks)
}

// GetBranchSummary returns per-status stock counts for a branch
// GET /api/v1/stocks/branches/:branchId/summary
func (h *StockHandler) GetBranchSummary(c *gin.Context) {
	branchID, ok := parseUUIDParam(c, "branchId")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	summary, err := h.service.GetBranchSummary(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// LowStockAlerts returns at-risk stock records grouped by severity
// GET /api/v1/stocks/branches/:branchId/alerts
func (h *StockHandler) LowStockAlerts(c *gin.Context) {
	branchID, ok := parseUUIDParam(c, "branchId")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	alerts, err := h.service.LowStockAlerts(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, alerts)
}

// GetProductStock returns a product's stock across branches with the total
// GET /api/v1/stocks/products/:productId
func (h *StockHandler) GetProductStock(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	stock, err := h.service.GetProductStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// ListLowStock returns stock records at or below their reorder point
// GET /api/v1/stocks/branches/:branchId/low
func (h *StockHandler) ListLowStock(c *gin.Context) {
	branchID, ok := parseUUIDParam(c, "branchId")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	stocks, err := h.service.ListLowStock(c.Request.Context(), branchID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stocks)
}
