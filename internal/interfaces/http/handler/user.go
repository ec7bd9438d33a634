package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/maumaun30/CM-Pharmacy-API/internal/application/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// UserHandler exposes staff management over HTTP
type UserHandler struct {
	BaseHandler
	service *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *appidentity.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// branchAssignmentRequest carries the target branch of an assignment or switch
type branchAssignmentRequest struct {
	BranchID string `json:"branch_id" binding:"required,uuid"`
}

// RegisterRoutes registers user routes. Staff management is admin-only
// except branch switching, which any authenticated user may do for
// themselves.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.RequireRole("admin")

	users := rg.Group("/users")
	{
		users.POST("", admin, h.Register)
		users.GET("", admin, h.List)
		users.GET("/:id", admin, h.Get)
		users.PUT("/:id/branch", admin, h.AssignBranch)
		users.POST("/:id/activate", admin, h.Activate)
		users.POST("/:id/deactivate", admin, h.Deactivate)
		users.POST("/switch-branch", h.SwitchBranch)
	}
}

// Register creates a staff account
// POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req appidentity.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// List returns staff accounts matching a filter
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var filter appidentity.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	users, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, users)
}

// Get returns a single staff account
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// AssignBranch sets a user's home branch
// PUT /api/v1/users/:id/branch
func (h *UserHandler) AssignBranch(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req branchAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	branchID, ok := parseUUID(req.BranchID)
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.service.AssignBranch(c.Request.Context(), id, branchID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SwitchBranch moves the caller's working branch for the current shift
// POST /api/v1/users/switch-branch
func (h *UserHandler) SwitchBranch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req branchAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	branchID, ok := parseUUID(req.BranchID)
	if !ok {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.service.SwitchBranch(c.Request.Context(), userID, branchID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Branch switched"})
}

// Activate re-enables a staff account
// POST /api/v1/users/:id/activate
func (h *UserHandler) Activate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate disables a staff account. Users cannot deactivate themselves.
// POST /api/v1/users/:id/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
