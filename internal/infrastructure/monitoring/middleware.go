package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// Process request
		c.Next()

		// Label by route template, not request path, to keep
		// cardinality bounded. Requests served through NoRoute
		// have no template.
		route := c.FullPath()
		if route == "" {
			route = "/*filepath"
		}

		// Get response data
		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())

		// Record metrics
		metrics.RecordHTTPRequest(method, route, status, duration, respSize)
	}
}

// Timer measures resolution duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	scope   string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, scope string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		scope:   scope,
	}
}

// Stop stops the timer and records the outcome
func (t *Timer) Stop(outcome string) {
	duration := time.Since(t.start)
	t.metrics.RecordResolve(t.scope, outcome, duration)
}
