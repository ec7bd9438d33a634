package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/auth"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/logger"
)

// Context keys and header constants used by the JWT middleware.
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	JWTBranchIDKey = "jwt_branch_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig configures the authentication middleware.
type JWTMiddlewareConfig struct {
	// JWTService validates tokens. Required.
	JWTService *auth.JWTService
	// TokenBlacklist rejects revoked tokens when set.
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths pass through without authentication.
	SkipPaths []string
	// SkipPathPrefixes pass through without authentication.
	SkipPathPrefixes []string
	// OnError replaces the default 401 response when set.
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// DefaultJWTConfig protects everything except health probes and the
// login/refresh endpoints.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/ready",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

// JWTAuthMiddleware authenticates requests with the default configuration.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// skippable reports whether the path bypasses authentication.
func (cfg *JWTMiddlewareConfig) skippable(path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from the Authorization header. The second
// return carries the rejection message when no usable token is present.
func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader(AuthHeaderKey)
	switch {
	case header == "":
		return "", "Missing authorization header"
	case !strings.HasPrefix(header, BearerPrefix):
		return "", "Invalid authorization header format"
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", "Missing token"
	}
	return token, ""
}

// JWTAuthMiddlewareWithConfig authenticates requests: it validates the
// bearer token, rejects revoked JTIs, and places the claims in both the gin
// context and the request context for downstream log correlation.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skippable(c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString, reject := bearerToken(c)
		if reject != "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, reject)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		// Blacklist lookup failures fail open for availability.
		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			case revoked:
				handleAuthError(c, cfg, auth.ErrTokenRevoked, "Token has been revoked")
				return
			}
		}

		setClaimsInContext(c, claims)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithUserID(ctx, log, claims.UserID)
		if claims.BranchID != "" {
			ctx, _ = logger.WithBranchID(ctx, log, claims.BranchID)
		}
		c.Request = c.Request.WithContext(ctx)

		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful",
				zap.String("user_id", claims.UserID),
				zap.String("username", claims.Username),
				zap.String("role", claims.Role),
			)
		}

		c.Next()
	}
}

func setClaimsInContext(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTUsernameKey, claims.Username)
	c.Set(JWTRoleKey, claims.Role)
	if claims.BranchID != "" {
		c.Set(JWTBranchIDKey, claims.BranchID)
	}
}

// authError maps a validation failure to the response code and message.
func authError(err error) (string, string) {
	switch err {
	case auth.ErrExpiredToken:
		return "TOKEN_EXPIRED", "Token has expired"
	case auth.ErrInvalidToken:
		return "TOKEN_INVALID", "Invalid token"
	case auth.ErrInvalidTokenType:
		return "TOKEN_INVALID", "Invalid token type"
	case auth.ErrTokenNotYetValid:
		return "TOKEN_INVALID", "Token is not yet valid"
	case auth.ErrTokenRevoked:
		return "TOKEN_REVOKED", "Token has been revoked"
	}
	return "UNAUTHORIZED", "Authentication required"
}

func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, msg := authError(err)
	abortWithCode(c, http.StatusUnauthorized, code, msg)
}

// contextString reads a string value set by this middleware, or "".
func contextString(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetJWTClaims returns the validated claims, or nil outside an
// authenticated request.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(JWTClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetJWTUserID returns the authenticated user's ID, or "".
func GetJWTUserID(c *gin.Context) string { return contextString(c, JWTUserIDKey) }

// GetJWTUsername returns the authenticated username, or "".
func GetJWTUsername(c *gin.Context) string { return contextString(c, JWTUsernameKey) }

// GetJWTRole returns the authenticated user's role, or "".
func GetJWTRole(c *gin.Context) string { return contextString(c, JWTRoleKey) }

// GetJWTBranchID returns the authenticated user's branch, or "" for users
// not pinned to a branch.
func GetJWTBranchID(c *gin.Context) string { return contextString(c, JWTBranchIDKey) }

// OptionalJWTAuthMiddleware extracts claims when a valid token is present
// but never rejects the request.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, reject := bearerToken(c); reject == "" {
			if claims, err := jwtService.ValidateAccessToken(tokenString); err == nil {
				setClaimsInContext(c, claims)
			}
		}
		c.Next()
	}
}
