package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "stockbook/internal/core/context"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// Trace middleware reuses or generates the request id and exposes it to
// the domain through the request context.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.NewTraceContext(c.GetHeader(HeaderRequestID))

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", trace.RequestID)
		c.Header(HeaderRequestID, trace.RequestID)

		c.Next()
	}
}
