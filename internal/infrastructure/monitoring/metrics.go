package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// File serving metrics
	FilesServed     *prometheus.CounterVec
	BytesServed     *prometheus.CounterVec
	NotModified     *prometheus.CounterVec
	ResolveOutcomes *prometheus.CounterVec
	ResolveDuration *prometheus.HistogramVec

	// Snapshot metrics
	SnapshotFiles prometheus.Gauge
	SnapshotBytes prometheus.Gauge
	ScanDuration  prometheus.Histogram

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests int64
	TotalErrors   int64
	FilesServed   int64
	BytesServed   int64
	TotalDuration float64 // sum of all request durations
	RequestCount  int64   // count for averaging
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapserve_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapserve_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapserve_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "route"},
		),

		// File serving metrics
		FilesServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapserve_files_served_total",
				Help: "Total number of files served",
			},
			[]string{"scope"},
		),
		BytesServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapserve_file_bytes_total",
				Help: "Total file bytes served",
			},
			[]string{"scope"},
		),
		NotModified: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapserve_not_modified_total",
				Help: "Total number of conditional requests answered with 304",
			},
			[]string{"scope"},
		),
		ResolveOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapserve_resolve_outcomes_total",
				Help: "Path resolution outcomes",
			},
			[]string{"scope", "outcome"},
		),
		ResolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapserve_resolve_duration_seconds",
				Help:    "Path resolution duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
			},
			[]string{"scope"},
		),

		// Snapshot metrics
		SnapshotFiles: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapserve_snapshot_files",
				Help: "Number of regular files in the snapshot root",
			},
		),
		SnapshotBytes: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapserve_snapshot_bytes",
				Help: "Total size of the snapshot root in bytes",
			},
		),
		ScanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snapserve_snapshot_scan_duration_seconds",
				Help:    "Snapshot inventory walk duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapserve_uptime_seconds",
				Help: "Server uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, route).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordResolve records a path resolution outcome
func (m *Metrics) RecordResolve(scope, outcome string, duration time.Duration) {
	m.ResolveOutcomes.WithLabelValues(scope, outcome).Inc()
	m.ResolveDuration.WithLabelValues(scope).Observe(duration.Seconds())
}

// RecordFileServed records a file response
func (m *Metrics) RecordFileServed(scope string, bytes int64) {
	m.FilesServed.WithLabelValues(scope).Inc()
	m.BytesServed.WithLabelValues(scope).Add(float64(bytes))

	m.mu.Lock()
	m.snapshot.FilesServed++
	m.snapshot.BytesServed += bytes
	m.mu.Unlock()
}

// RecordNotModified records a conditional request answered with 304
func (m *Metrics) RecordNotModified(scope string) {
	m.NotModified.WithLabelValues(scope).Inc()
}

// RecordSnapshotScan records an inventory walk duration
func (m *Metrics) RecordSnapshotScan(duration time.Duration) {
	m.ScanDuration.Observe(duration.Seconds())
}

// SetSnapshotFiles sets the number of files in the snapshot root
func (m *Metrics) SetSnapshotFiles(count int) {
	m.SnapshotFiles.Set(float64(count))
}

// SetSnapshotBytes sets the total size of the snapshot root
func (m *Metrics) SetSnapshotBytes(bytes int64) {
	m.SnapshotBytes.Set(float64(bytes))
}

// GetSnapshot returns current metric values for the JSON API
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// UptimeSeconds returns seconds since the collector was created
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}
