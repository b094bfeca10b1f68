package endpoint

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/registry-api/errors"
)

// NotFound answers every unmatched route with the fixed not-found body.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		status, body := apperrors.IntoResponse(apperrors.NotFound())
		c.Data(status, "application/json", body)
	}
}
