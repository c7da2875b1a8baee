package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// CompressionConfig defines response compression configuration.
type CompressionConfig struct {
	MinSize int
	Level   int
}

// DefaultCompressionConfig returns production-ready compression configuration.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize: 1024,
		Level:   gzip.DefaultCompression,
	}
}

// Types worth compressing. Scraped images are already compressed and
// only waste CPU here.
var compressiblePrefixes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"application/xml",
	"image/svg+xml",
}

func compressible(contentType string) bool {
	if contentType == "" {
		return false
	}
	for _, prefix := range compressiblePrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// Compression creates gzip response middleware. Responses below
// MinSize are passed through when their Content-Length is known by
// write time; 200 responses with a compressible Content-Type are
// otherwise compressed for clients that accept gzip.
func Compression(cfg CompressionConfig) gin.HandlerFunc {
	if cfg.Level < gzip.HuffmanOnly || cfg.Level > gzip.BestCompression {
		cfg.Level = gzip.DefaultCompression
	}

	pool := &sync.Pool{
		New: func() interface{} {
			gz, _ := gzip.NewWriterLevel(io.Discard, cfg.Level)
			return gz
		},
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead ||
			!strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gw := &gzipWriter{
			ResponseWriter: c.Writer,
			minSize:        cfg.MinSize,
			pool:           pool,
		}
		c.Writer = gw
		defer gw.close()

		c.Next()
	}
}

// gzipWriter defers the compress-or-not decision until the first body
// write. Gin records the status on WriteHeader but flushes headers on
// the first write, so by then the status, Content-Type, and any
// Content-Length are all known and still mutable.
type gzipWriter struct {
	gin.ResponseWriter
	minSize  int
	pool     *sync.Pool
	gz       *gzip.Writer
	decided  bool
	compress bool
}

func (w *gzipWriter) decide() {
	if w.decided {
		return
	}
	w.decided = true

	h := w.Header()
	if w.ResponseWriter.Status() != http.StatusOK ||
		h.Get("Content-Encoding") != "" ||
		!compressible(h.Get("Content-Type")) {
		return
	}
	if cl := h.Get("Content-Length"); cl != "" {
		if n, err := strconv.Atoi(cl); err == nil && n < w.minSize {
			return
		}
	}

	h.Del("Content-Length")
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")

	gz := w.pool.Get().(*gzip.Writer)
	gz.Reset(w.ResponseWriter)
	w.gz = gz
	w.compress = true
}

func (w *gzipWriter) Write(b []byte) (int, error) {
	w.decide()
	if w.compress {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *gzipWriter) Flush() {
	if w.compress {
		w.gz.Flush()
	}
	w.ResponseWriter.Flush()
}

func (w *gzipWriter) close() {
	if !w.compress {
		return
	}
	w.gz.Close()
	w.pool.Put(w.gz)
	w.gz = nil
}
