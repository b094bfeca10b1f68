package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/registry-api/metrics"
)

// Metrics serves the recorder in the Prometheus text exposition format.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return gin.WrapH(rec.Handler())
}
