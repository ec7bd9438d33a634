package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, requiredRoles []string)
}

// RequireRole creates middleware that requires a specific role
func RequireRole(role string) gin.HandlerFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole creates middleware that requires any of the specified roles
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return RequireAnyRoleWithConfig(RoleConfig{}, roles...)
}

// RequireAnyRoleWithConfig creates middleware that requires any of the specified roles with custom config
func RequireAnyRoleWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				if cfg.Logger != nil {
					cfg.Logger.Debug("Role check passed",
						zap.String("user_id", claims.UserID),
						zap.String("role", claims.Role),
					)
				}
				c.Next()
				return
			}
		}

		handleRoleDenied(c, cfg, roles, "User lacks required role")
	}
}

func handleRoleDenied(c *gin.Context, cfg RoleConfig, roles []string, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Role check failed",
			zap.Strings("required_any", roles),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	if cfg.OnDenied != nil {
		cfg.OnDenied(c, roles)
		return
	}

	abortWithCode(c, http.StatusForbidden, "FORBIDDEN", "Insufficient role for this operation")
}
