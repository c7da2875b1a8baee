package http

import (
	"time"

	"github.com/snapserve/snapserve/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackScan times a snapshot inventory walk
func (hm *HandlerMetrics) TrackScan() func() {
	start := time.Now()
	return func() {
		hm.metrics.RecordSnapshotScan(time.Since(start))
	}
}
