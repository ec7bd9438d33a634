package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appaudit "github.com/maumaun30/CM-Pharmacy-API/internal/application/audit"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// AuditHandler exposes the audit trail over HTTP
type AuditHandler struct {
	BaseHandler
	service *appaudit.LogService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(service *appaudit.LogService) *AuditHandler {
	return &AuditHandler{service: service}
}

// RegisterRoutes registers audit routes. The trail is admin-only.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/audit-logs", middleware.RequireRole("admin"))
	{
		logs.GET("", h.List)
		logs.GET("/users/:userId", h.ListByUser)
		logs.GET("/modules/:module", h.ListByModule)
	}
}

// List returns audit records within a date range
// GET /api/v1/audit-logs?start_date=...&end_date=...
func (h *AuditHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		// End date is inclusive
		end = parsed.AddDate(0, 0, 1)
	}

	logs, err := h.service.ListByDateRange(c.Request.Context(), start, end, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}

// ListByUser returns the audit trail of a single user
// GET /api/v1/audit-logs/users/:userId
func (h *AuditHandler) ListByUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	logs, err := h.service.ListByUser(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}

// ListByModule returns the audit trail of a single module
// GET /api/v1/audit-logs/modules/:module
func (h *AuditHandler) ListByModule(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	logs, err := h.service.ListByModule(c.Request.Context(), c.Param("module"), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}
