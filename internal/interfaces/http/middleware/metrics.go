package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/prometheus"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts, latency and in-flight requests. The path
// label is the route template so IDs in URLs do not explode cardinality.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	active := m.HTTPActiveRequests.WithLabelValues()
	return func(c *gin.Context) {
		start := time.Now()
		active.Inc()
		defer active.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

//Personal.AI order the ending
