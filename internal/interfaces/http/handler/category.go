package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/maumaun30/CM-Pharmacy-API/internal/application/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// CategoryHandler exposes product categories over HTTP
type CategoryHandler struct {
	BaseHandler
	service *appcatalog.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *appcatalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireAnyRole("admin", "manager")

	categories := rg.Group("/categories")
	{
		categories.POST("", manage, h.Create)
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", manage, h.Update)
		categories.DELETE("/:id", manage, h.Delete)
	}
}

// Create creates a new category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// List returns all categories
// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// Get returns a single category
// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Update renames a category
// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete removes a category with no products assigned
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
