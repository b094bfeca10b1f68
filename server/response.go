package server

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/registry-api/errors"
)

// RespondWithError writes err as a JSON error response. AppErrors keep their
// status and message; any other error becomes a 500 carrying its message.
func RespondWithError(c *gin.Context, err error) {
	status, body := apperrors.IntoResponse(err)
	c.Data(status, "application/json", body)
}
