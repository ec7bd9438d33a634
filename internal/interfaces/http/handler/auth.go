package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appidentity "github.com/maumaun30/CM-Pharmacy-API/internal/application/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/middleware"
)

// AuthHandler exposes authentication endpoints
type AuthHandler struct {
	BaseHandler
	service      *appidentity.AuthService
	loginLimiter *middleware.RateLimiter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// WithLoginRateLimiter throttles login and refresh attempts per client IP
func (h *AuthHandler) WithLoginRateLimiter(limiter *middleware.RateLimiter) *AuthHandler {
	h.loginLimiter = limiter
	return h
}

// logoutRequest carries the refresh token to revoke alongside the access token
type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	if h.loginLimiter != nil {
		auth.POST("/login", middleware.AuthRateLimit(h.loginLimiter), h.Login)
		auth.POST("/refresh", middleware.AuthRateLimit(h.loginLimiter), h.Refresh)
	} else {
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)
	auth.PUT("/password", h.ChangePassword)
}

// Login authenticates a user and issues a token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout revokes the caller's access token and, if provided, refresh token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)

	var req logoutRequest
	// Body is optional; a bare logout revokes only the access token
	_ = c.ShouldBindJSON(&req)

	if err := h.service.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// ChangePassword changes the authenticated user's password
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed"})
}
