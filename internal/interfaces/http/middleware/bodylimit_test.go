package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitRouter(limit int64, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/items", handler)
	return router
}

func echoOK(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestBodyLimit_WithinLimit(t *testing.T) {
	router := newBodyLimitRouter(1024, echoOK)

	req := httptest.NewRequest("POST", "/items", strings.NewReader(`{"sku":"AMX-500"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_DeclaredLengthTooLarge(t *testing.T) {
	router := newBodyLimitRouter(100, echoOK)

	req := httptest.NewRequest("POST", "/items", strings.NewReader(strings.Repeat("x", 200)))
	req.ContentLength = 200
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestBodyLimit_NoBodyRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(10))
	router.GET("/items", echoOK)

	req := httptest.NewRequest("GET", "/items", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_StreamingBodyCapped(t *testing.T) {
	// Without a declared Content-Length the limit is enforced at read time
	// by MaxBytesReader.
	router := newBodyLimitRouter(50, func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, "body too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("POST", "/items", strings.NewReader(strings.Repeat("x", 100)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
