package endpoint

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Echo answers 200 with the request body and the request content type.
func Echo() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			_ = c.Error(err)
			return
		}
		contentType := c.ContentType()
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		c.Data(http.StatusOK, contentType, body)
	}
}
