package middleware

import (
	"time"

	"homebudget/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency keyed by the matched route
// template, not the raw path.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
