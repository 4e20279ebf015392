// Package middleware provides HTTP middleware components.
package middleware

import (
	"github.com/gin-gonic/gin"

	"staffdesk/internal/core/appctx"
)

// RequestID attaches a request ID to the context, honoring an incoming
// X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = appctx.NewRequestID()
		}

		ctx := appctx.WithRequestID(c.Request.Context(), reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", reqID)

		c.Next()
	}
}
