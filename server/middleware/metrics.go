package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/registry-api/metrics"
)

// Metrics records one request count and one latency observation per
// request, labelled by method, raw path and final status. Register it
// before ErrorHandler so failed handlers are already responses when the
// status is read.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		elapsed := time.Since(start).Seconds()
		labels := metrics.Labels{
			"method": method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		rec.IncCounter(metrics.RequestsTotal, labels)
		rec.ObserveHistogram(metrics.RequestDuration, elapsed, labels)
	}
}
