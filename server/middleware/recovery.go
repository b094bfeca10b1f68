package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/registry-api/errors"
	"github.com/kbukum/registry-api/logger"
)

// panicBody is served for every recovered panic; the panic value is only logged.
var panicBody = gin.H{"error": apperrors.MsgInternal}

// Recovery turns a handler panic into a logged 500. Metrics runs outside it
// and sees the 500.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.WithContext(c.Request.Context()).Error("Panic recovered", logger.Fields(
				logger.FieldError, fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				logger.FieldMethod, c.Request.Method,
				logger.FieldPath, c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			))
			c.AbortWithStatusJSON(http.StatusInternalServerError, panicBody)
		}()
		c.Next()
	}
}
