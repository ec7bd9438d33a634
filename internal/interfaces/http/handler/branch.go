package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/maumaun30/CM-Pharmacy-API/internal/application/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// BranchHandler exposes pharmacy branches over HTTP
type BranchHandler struct {
	BaseHandler
	service *appcatalog.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(service *appcatalog.BranchService) *BranchHandler {
	return &BranchHandler{service: service}
}

// RegisterRoutes registers branch routes. Branch management is admin-only;
// reads are open to all authenticated staff.
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.RequireRole("admin")

	branches := rg.Group("/branches")
	{
		branches.POST("", admin, h.Create)
		branches.GET("", h.List)
		branches.GET("/active", h.ListActive)
		branches.GET("/:id", h.Get)
		branches.PUT("/:id", admin, h.Update)
		branches.POST("/:id/activate", admin, h.Activate)
		branches.POST("/:id/deactivate", admin, h.Deactivate)
	}
}

// Create creates a new branch
// POST /api/v1/branches
func (h *BranchHandler) Create(c *gin.Context) {
	var req appcatalog.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	branch, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, branch)
}

// List returns all branches
// GET /api/v1/branches
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, branches)
}

// ListActive returns branches currently accepting operations
// GET /api/v1/branches/active
func (h *BranchHandler) ListActive(c *gin.Context) {
	branches, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, branches)
}

// Get returns a single branch
// GET /api/v1/branches/:id
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	branch, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, branch)
}

// Update updates branch details
// PUT /api/v1/branches/:id
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	var req appcatalog.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	branch, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, branch)
}

// Activate reopens a branch
// POST /api/v1/branches/:id/activate
func (h *BranchHandler) Activate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.service.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate closes a branch. The main branch cannot be closed.
// POST /api/v1/branches/:id/deactivate
func (h *BranchHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
