package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/snapserve/snapserve/internal/infrastructure/monitoring"
	"github.com/snapserve/snapserve/internal/shared/paths"
)

// Stats summarizes the contents of a snapshot root
type Stats struct {
	Files      int    `json:"files"`
	Images     int    `json:"images"`
	TotalBytes int64  `json:"total_bytes"`
	TotalSize  string `json:"total_size"`
}

// Manager inspects a snapshot directory
type Manager struct {
	root    string
	metrics *monitoring.Metrics
}

// NewManager creates a manager for a snapshot root
func NewManager(root string) *Manager {
	return &Manager{root: filepath.Clean(root)}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Root returns the snapshot root directory
func (m *Manager) Root() string {
	return m.root
}

// HasIndex reports whether the root holds a serveable index page
func (m *Manager) HasIndex() bool {
	info, err := os.Stat(filepath.Join(m.root, paths.IndexFile))
	return err == nil && info.Mode().IsRegular()
}

// Stats walks the snapshot root and counts its regular files. The walk
// callback runs concurrently, so counters are atomics.
func (m *Manager) Stats(ctx context.Context) (Stats, error) {
	// Per-entry errors are skipped below, so an absent root has to be
	// caught here or it would report as an empty snapshot.
	info, err := os.Stat(m.root)
	if err != nil {
		return Stats{}, fmt.Errorf("stat snapshot root: %w", err)
	}
	if !info.IsDir() {
		return Stats{}, fmt.Errorf("snapshot root %s is not a directory", m.root)
	}

	imagePrefix := paths.ImageRoot(m.root) + string(filepath.Separator)

	var files, images, bytes int64

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, m.root, func(p string, d os.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}

		atomic.AddInt64(&files, 1)
		atomic.AddInt64(&bytes, info.Size())
		if strings.HasPrefix(p, imagePrefix) {
			atomic.AddInt64(&images, 1)
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("walk snapshot root: %w", err)
	}

	stats := Stats{
		Files:      int(files),
		Images:     int(images),
		TotalBytes: bytes,
		TotalSize:  formatBytes(bytes),
	}

	if m.metrics != nil {
		m.metrics.SetSnapshotFiles(stats.Files)
		m.metrics.SetSnapshotBytes(stats.TotalBytes)
	}

	return stats, nil
}

// formatBytes formats bytes to human-readable size
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
