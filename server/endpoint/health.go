package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/registry-api/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// Health returns a liveness handler. It always answers 200 with status
// "healthy"; component statuses are included for information only and never
// change the response code.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if checker != nil {
			body["components"] = checker(c.Request.Context())
		}
		c.JSON(http.StatusOK, body)
	}
}
