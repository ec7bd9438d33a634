package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/persistence"
)

// SystemHandler exposes health and readiness probes
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	redis   *redis.Client
	version string
}

// NewSystemHandler creates a new system handler. The redis client is
// optional; readiness skips the check when it is nil.
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client, version string) *SystemHandler {
	return &SystemHandler{db: db, redis: redisClient, version: version}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health is the liveness probe
// GET /api/v1/health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"time":    time.Now().UTC(),
	})
}

// Ready is the readiness probe; it checks database and cache connectivity
// GET /api/v1/ready
func (h *SystemHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.db.Ping(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	h.Success(c, gin.H{"status": "ready", "checks": checks})
}
