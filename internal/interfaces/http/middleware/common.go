package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDContextKey is the gin context key holding the request ID
const RequestIDContextKey = "request_id"

// abortWithCode aborts the request with the standard error envelope
func abortWithCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the default CORS settings. AllowOrigins starts
// empty: no cross-origin request is honored until origins are configured.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS handles cross-origin requests with the default configuration.
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig handles cross-origin requests against an origin whitelist.
// Preflight requests are answered with 204; CORS headers appear only when
// the origin resolves against the whitelist.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	wildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	// resolve maps the request origin to the Allow-Origin header value.
	resolve := func(origin string) (string, bool) {
		if len(cfg.AllowOrigins) == 0 {
			return "", false
		}
		if wildcard {
			return "*", true
		}
		for _, o := range cfg.AllowOrigins {
			if o == origin {
				return origin, true
			}
		}
		return "", false
	}

	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	expose := strings.Join(cfg.ExposeHeaders, ", ")

	return func(c *gin.Context) {
		if allowed, ok := resolve(c.Request.Header.Get("Origin")); ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", allowed)
			// Browsers reject credentialed responses on a wildcard origin.
			if cfg.AllowCredentials && allowed != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Allow-Methods", methods)
			if expose != "" {
				h.Set("Access-Control-Expose-Headers", expose)
			}
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID tags each request with an identifier, honoring a caller-supplied
// X-Request-ID so upstream proxies can correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Set(RequestIDContextKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand failure leaves a timestamp as a last resort
		return time.Now().Format("20060102150405")
	}
	return hex.EncodeToString(bytes)
}

// SecurityConfig controls the response security headers.
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	CSPEnabled   bool
	CSPDirective string

	PermissionsPolicyEnabled   bool
	PermissionsPolicyDirective string
}

// DefaultSecurityConfig returns the default header set. HSTS stays off
// until the deployment terminates TLS.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSEnabled:           false,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		HSTSPreload:           false,

		CSPEnabled:   true,
		CSPDirective: "default-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",

		PermissionsPolicyEnabled:   true,
		PermissionsPolicyDirective: "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
}

// Secure adds security headers with the default configuration.
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds the configured security headers to every response.
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	type header struct{ name, value string }

	fixed := []header{
		{"X-Frame-Options", "DENY"},
		{"X-XSS-Protection", "1; mode=block"},
		{"X-Content-Type-Options", "nosniff"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
	}
	if cfg.CSPEnabled && cfg.CSPDirective != "" {
		fixed = append(fixed, header{"Content-Security-Policy", cfg.CSPDirective})
	}
	if cfg.HSTSEnabled {
		hsts := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
		fixed = append(fixed, header{"Strict-Transport-Security", hsts})
	}
	if cfg.PermissionsPolicyEnabled && cfg.PermissionsPolicyDirective != "" {
		fixed = append(fixed, header{"Permissions-Policy", cfg.PermissionsPolicyDirective})
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, hdr := range fixed {
			h.Set(hdr.name, hdr.value)
		}
		c.Next()
	}
}
