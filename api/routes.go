package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/registry-api/server/endpoint"
)

// RegisterRoutes mounts the application routes. The default endpoints
// (/health, /metrics, /version, not-found) are registered by the server.
func RegisterRoutes(r gin.IRoutes, s *State) {
	r.GET("/", s.Root)
	r.POST("/echo", endpoint.Echo())
	r.GET("/help", endpoint.Help())
}
