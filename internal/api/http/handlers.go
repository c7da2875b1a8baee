package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapserve/snapserve/internal/domain/content"
	"github.com/snapserve/snapserve/internal/domain/resolver"
	"github.com/snapserve/snapserve/internal/domain/snapshot"
	"github.com/snapserve/snapserve/internal/infrastructure/monitoring"
	"github.com/snapserve/snapserve/internal/infrastructure/tracing"
	"github.com/snapserve/snapserve/internal/shared/paths"
	"github.com/snapserve/snapserve/internal/shared/utils"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	site     *resolver.Resolver
	images   *resolver.Resolver
	snapshot *snapshot.Manager
	detector *content.Detector
	etagger  *utils.ETagger
	hm       *HandlerMetrics
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	site *resolver.Resolver,
	images *resolver.Resolver,
	snapshotMgr *snapshot.Manager,
	detector *content.Detector,
	etagger *utils.ETagger,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		site:     site,
		images:   images,
		snapshot: snapshotMgr,
		detector: detector,
		etagger:  etagger,
		hm:       NewHandlerMetrics(metrics),
		metrics:  metrics,
		logger:   logger,
	}
}

// Root serves the snapshot's entry page
func (h *Handlers) Root(c *gin.Context) {
	h.serve(c, h.site, paths.IndexFile)
}

// ServeFile serves any file under the snapshot root. Registered as the
// NoRoute handler so the catch-all cannot collide with fixed routes.
func (h *Handlers) ServeFile(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
		return
	}

	name := strings.TrimPrefix(c.Request.URL.Path, "/")
	if name == "" {
		name = paths.IndexFile
	}
	h.serve(c, h.site, name)
}

// ServeImage serves scraped images with a case-insensitive fallback
func (h *Handlers) ServeImage(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")

	// Image references arrive percent-decoded once by the router, but
	// scraped HTML frequently double-encodes them. Malformed escapes
	// are served as written.
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	h.serve(c, h.images, name)
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	stop := h.hm.TrackScan()
	stats, err := h.snapshot.Stats(c.Request.Context())
	stop()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}

	snap := h.metrics.GetSnapshot()
	avgMs := 0.0
	if snap.RequestCount > 0 {
		avgMs = snap.TotalDuration / float64(snap.RequestCount) * 1000
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"snapshot": gin.H{
			"root":   h.snapshot.Root(),
			"index":  h.snapshot.HasIndex(),
			"files":  stats.Files,
			"images": stats.Images,
			"size":   stats.TotalSize,
		},
		"requests": gin.H{
			"total":        snap.TotalRequests,
			"errors":       snap.TotalErrors,
			"files_served": snap.FilesServed,
			"bytes_served": snap.BytesServed,
			"avg_ms":       avgMs,
		},
		"uptime_seconds": h.metrics.UptimeSeconds(),
	})
}

// serve resolves a name against one root and streams the result
func (h *Handlers) serve(c *gin.Context, r *resolver.Resolver, name string) {
	res, ok := r.Resolve(name)
	if !ok {
		h.notFound(c)
		return
	}

	if res.ViaFallback {
		h.logger.Debug("case-insensitive match",
			zap.String("requested", name),
			zap.String("matched", res.Name),
		)
	}

	h.sendFile(c, r.Scope(), res)
}

// notFound answers every serving failure identically
func (h *Handlers) notFound(c *gin.Context) {
	h.logger.Debug("file not found",
		zap.String("path", c.Request.URL.Path),
		zap.String("trace_id", string(tracing.GetTraceID(c.Request.Context()))),
	)
	c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
}
