package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appdashboard "github.com/maumaun30/CM-Pharmacy-API/internal/application/dashboard"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// DashboardHandler exposes the aggregated dashboard snapshot
type DashboardHandler struct {
	BaseHandler
	service *appdashboard.Service
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *appdashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
}

// Stats returns today's sales totals, stock alert counts, and recent
// transactions. Admins see all branches by default and may narrow with
// ?branch_id; everyone else is scoped to their own branch.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	branchID, ok := h.resolveBranchScope(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

func (h *DashboardHandler) resolveBranchScope(c *gin.Context) (*uuid.UUID, bool) {
	if middleware.GetJWTRole(c) == "admin" {
		raw := c.Query("branch_id")
		if raw == "" {
			return nil, true
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID")
			return nil, false
		}
		return &id, true
	}

	id, err := uuid.Parse(middleware.GetJWTBranchID(c))
	if err != nil {
		h.Forbidden(c, "No branch assignment")
		return nil, false
	}
	return &id, true
}
