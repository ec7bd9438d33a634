package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/maumaun30/CM-Pharmacy-API/internal/application/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// ProductHandler exposes the product catalog over HTTP
type ProductHandler struct {
	BaseHandler
	service *appcatalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireAnyRole("admin", "manager")

	products := rg.Group("/products")
	{
		products.POST("", manage, h.Create)
		products.GET("", h.List)
		products.GET("/sku/:sku", h.GetBySKU)
		products.GET("/barcode/:barcode", h.GetByBarcode)
		products.GET("/:id", h.Get)
		products.PUT("/:id", manage, h.Update)
		products.PUT("/:id/prices", manage, h.UpdatePrices)
		products.POST("/:id/activate", manage, h.Activate)
		products.POST("/:id/deactivate", manage, h.Deactivate)
	}
}

// Create creates a new product
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// List returns products matching a filter
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	var filter appcatalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	products, total, err := h.service.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// Get returns a single product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetBySKU returns a product by its SKU
// GET /api/v1/products/sku/:sku
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.service.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetByBarcode returns a product by barcode, the POS scan path
// GET /api/v1/products/barcode/:barcode
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.service.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Update updates a product's descriptive fields
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// UpdatePrices updates a product's selling price and cost
// PUT /api/v1/products/:id/prices
func (h *ProductHandler) UpdatePrices(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req appcatalog.UpdateProductPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.service.UpdatePrices(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Activate marks a product as active
// POST /api/v1/products/:id/activate
func (h *ProductHandler) Activate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate marks a product as inactive
// POST /api/v1/products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
