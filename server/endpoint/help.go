package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HelpText is the static body served by Help.
const HelpText = `registry-api

Routes:
  GET  /         fetch the upstream configuration
  GET  /health   liveness probe
  POST /echo     echo the request body
  GET  /help     this text
  GET  /metrics  Prometheus metrics
  GET  /version  build information
`

// Help serves HelpText.
func Help() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, HelpText)
	}
}
