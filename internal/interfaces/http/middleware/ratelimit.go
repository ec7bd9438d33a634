package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter keyed by caller identity.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	remaining int
	resetAt   time.Time
}

// NewRateLimiter creates a limiter allowing `limit` requests per `window`.
// A background sweep evicts idle buckets.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, b := range rl.buckets {
			if now.Sub(b.resetAt) > rl.window {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow consumes one request for the key and reports whether it fits the window
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.After(b.resetAt) {
		rl.buckets[key] = &bucket{
			remaining: rl.limit - 1,
			resetAt:   now.Add(rl.window),
		}
		return true
	}

	if b.remaining > 0 {
		b.remaining--
		return true
	}
	return false
}

// Remaining reports how many requests the key has left in the current window
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || time.Now().After(b.resetAt) {
		return rl.limit
	}
	return b.remaining
}

// RateLimit limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			abortWithCode(c, http.StatusTooManyRequests,
				"RATE_LIMIT_EXCEEDED", "Too many requests. Please try again later.")
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}

// RateLimitByKey limits requests using a caller-supplied key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(keyFunc(c)) {
			abortWithCode(c, http.StatusTooManyRequests,
				"RATE_LIMIT_EXCEEDED", "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}

// AuthRateLimit limits login attempts per client IP. Keys carry an "auth:"
// prefix so a limiter shared with RateLimit would still count separately,
// and blocked responses include a Retry-After hint.
func AuthRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "auth:" + c.ClientIP()

		if !limiter.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			abortWithCode(c, http.StatusTooManyRequests,
				"AUTH_RATE_LIMIT_EXCEEDED", "Too many authentication attempts. Please try again later.")
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
