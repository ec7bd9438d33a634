package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects requests whose declared Content-Length exceeds maxBytes
// and caps streaming bodies with a MaxBytesReader for the rest.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithCode(c, http.StatusRequestEntityTooLarge,
				"REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
