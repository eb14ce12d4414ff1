// Package middleware holds the gin middleware chain: request IDs, the
// scoring-path signature guard, and the admin bearer gate.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestID tags every request with an identifier for log correlation.
// A sane client-supplied X-Request-ID is kept; anything absent or
// oversized is replaced with a fresh UUID. The ID is echoed back in the
// response headers and stored in the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if l := len(requestID); l < 1 || l > 64 {
			requestID = uuid.New().String()
		}

		c.Header("X-Request-ID", requestID)
		c.Set(RequestIDKey, requestID)
		c.Next()
	}
}

// GetRequestID returns the request's ID, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
