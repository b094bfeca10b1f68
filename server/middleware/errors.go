package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/registry-api/errors"
)

// ErrorHandler renders the last error attached with c.Error as a JSON
// response. Nothing is written when the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		status, body := apperrors.IntoResponse(last.Err)
		c.Data(status, "application/json", body)
	}
}
