package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/registry-api/observability"
)

// ContextKeyRequestID is the gin context key holding the request identifier.
const ContextKeyRequestID = "request_id"

// RequestID injects a unique X-Request-Id header into every request/response
// and tags the active span with it. An identifier supplied by the caller is
// kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
			c.Request.Header.Set(HeaderRequestID, id)
		}
		c.Set(ContextKeyRequestID, id)
		trace.SpanFromContext(c.Request.Context()).SetAttributes(attribute.String(observability.AttrRequestID, id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
