package http

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/snapserve/snapserve/internal/domain/resolver"
)

// sendFile streams a resolved file with validation headers. Snapshots
// can be re-scraped in place, so responses force revalidation instead
// of long-lived caching.
func (h *Handlers) sendFile(c *gin.Context, scope string, res resolver.Resolution) {
	etag := h.etagger.ForFile(res.Path, res.Size, res.ModTime)

	c.Header("Cache-Control", "no-cache")
	c.Header("ETag", etag)

	// Answer revalidations before touching the file.
	if h.etagger.Matches(c.GetHeader("If-None-Match"), etag) {
		h.metrics.RecordNotModified(scope)
		c.Status(http.StatusNotModified)
		return
	}

	f, err := os.Open(res.Path)
	if err != nil {
		h.notFound(c)
		return
	}
	defer f.Close()

	c.Header("Content-Type", h.detector.Detect(res.Path))
	http.ServeContent(c.Writer, c.Request, res.Name, res.ModTime, f)

	switch c.Writer.Status() {
	case http.StatusOK:
		h.metrics.RecordFileServed(scope, res.Size)
	case http.StatusPartialContent:
		h.metrics.RecordFileServed(scope, int64(c.Writer.Size()))
	case http.StatusNotModified:
		h.metrics.RecordNotModified(scope)
	}
}
