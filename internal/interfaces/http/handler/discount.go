package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/maumaun30/CM-Pharmacy-API/internal/application/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// DiscountHandler exposes discount rules over HTTP
type DiscountHandler struct {
	BaseHandler
	service *appcatalog.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(service *appcatalog.DiscountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

// RegisterRoutes registers discount routes
func (h *DiscountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireAnyRole("admin", "manager")

	discounts := rg.Group("/discounts")
	{
		discounts.POST("", manage, h.Create)
		discounts.GET("", h.List)
		discounts.GET("/:id", h.Get)
		discounts.PUT("/:id", manage, h.Update)
		discounts.PATCH("/:id/enable", manage, h.Enable)
		discounts.PATCH("/:id/disable", manage, h.Disable)
		discounts.DELETE("/:id", manage, h.Delete)
	}
}

// Create defines a new discount rule
// POST /api/v1/discounts
func (h *DiscountHandler) Create(c *gin.Context) {
	var req appcatalog.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	discount, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, discount)
}

// List returns discounts matching a filter
// GET /api/v1/discounts
func (h *DiscountHandler) List(c *gin.Context) {
	var filter appcatalog.DiscountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	discounts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, discounts, total, page, pageSize)
}

// Get returns a single discount with its product associations
// GET /api/v1/discounts/:id
func (h *DiscountHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid discount ID")
		return
	}

	discount, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, discount)
}

// Update replaces a discount rule's definition
// PUT /api/v1/discounts/:id
func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid discount ID")
		return
	}

	var req appcatalog.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	discount, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, discount)
}

// Enable turns a discount rule on
// PATCH /api/v1/discounts/:id/enable
func (h *DiscountHandler) Enable(c *gin.Context) {
	h.setEnabled(c, true)
}

// Disable turns a discount rule off
// PATCH /api/v1/discounts/:id/disable
func (h *DiscountHandler) Disable(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *DiscountHandler) setEnabled(c *gin.Context, enabled bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid discount ID")
		return
	}

	discount, err := h.service.SetEnabled(c.Request.Context(), id, enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, discount)
}

// Delete removes a discount rule
// DELETE /api/v1/discounts/:id
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid discount ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
