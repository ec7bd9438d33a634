package handler

import (
	"github.com/gin-gonic/gin"

	appsales "github.com/maumaun30/CM-Pharmacy-API/internal/application/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// SaleHandler exposes point-of-sale checkout over HTTP
type SaleHandler struct {
	BaseHandler
	service *appsales.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service *appsales.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("/:id", h.Get)
		sales.GET("/branches/:branchId", h.ListByBranch)
	}
}

// Create performs a cash checkout. Stock deductions and the sale record
// commit atomically; a single short line rolls back the whole cart.
// POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req appsales.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.SoldBy = userID

	sale, err := h.service.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// Get returns a completed sale with its line items
// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ListByBranch returns the sale history of a branch
// GET /api/v1/sales/branches/:branchId
func (h *SaleHandler) ListByBranch(c *gin.Context) {
	branchID, ok := parseUUIDParam(c, "branchId")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	var filter appsales.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	sales, err := h.service.ListByBranch(c.Request.Context(), branchID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sales)
}
