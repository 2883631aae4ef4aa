package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/clubsphere/internal/metrics"
)

// Metrics records request count, latency, and in-flight gauge per route
// pattern. The registered route template keeps label cardinality bounded.
func Metrics(metricsReg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		metricsReg.HTTPRequestsInFlight.WithLabelValues(endpoint).Inc()
		defer metricsReg.HTTPRequestsInFlight.WithLabelValues(endpoint).Dec()

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		metricsReg.HTTPRequestsTotal.WithLabelValues(
			endpoint,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metricsReg.HTTPRequestDuration.WithLabelValues(
			endpoint,
			c.Request.Method,
		).Observe(duration)
	}
}
