package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/dto"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDContextKey); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return ""
}

// getUserID extracts the authenticated user ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
}

// Success and its variants write the standard response envelope.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) { c.Status(http.StatusNoContent) }

// Error writes the error envelope, tagged with the request ID when present.
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode derives the HTTP status from the error code.
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain errors to HTTP responses. Unknown error types
// come back as 500 without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	var stockErr *shared.InsufficientStockError
	if errors.As(err, &stockErr) {
		h.Error(c, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", stockErr.Error())
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}

// bindListRequest binds pagination query parameters with defaults applied
func bindListRequest(c *gin.Context) (dto.ListRequest, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	req.Normalize()
	return req, nil
}

// toFilter converts a list request to a repository filter
func toFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.OrderBy = req.OrderBy
	filter.OrderDir = req.OrderDir
	filter.Search = req.Search
	return filter
}

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	return parseUUID(c.Param(name))
}

func parseUUID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
