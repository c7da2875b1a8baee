package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name string, size int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func TestStats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", 100)
	writeFile(t, root, "assets/app.css", 50)
	writeFile(t, root, "images_scraped/a.jpg", 200)
	writeFile(t, root, "images_scraped/nested/b.png", 300)

	m := NewManager(root)
	stats, err := m.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Files)
	assert.Equal(t, 2, stats.Images)
	assert.Equal(t, int64(650), stats.TotalBytes)
	assert.Equal(t, "650 B", stats.TotalSize)
}

func TestStatsEmptyRoot(t *testing.T) {
	m := NewManager(t.TempDir())
	stats, err := m.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Files)
	assert.Equal(t, 0, stats.Images)
	assert.Equal(t, int64(0), stats.TotalBytes)
}

func TestStatsMissingRoot(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "gone"))
	_, err := m.Stats(context.Background())
	assert.Error(t, err)
}

func TestStatsCancelled(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, root, fmt.Sprintf("deep/dir/file%d.txt", i), 10)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager(root)
	_, err := m.Stats(ctx)
	assert.Error(t, err)
}

func TestHasIndex(t *testing.T) {
	root := t.TempDir()
	m := NewManager(root)
	assert.False(t, m.HasIndex())

	writeFile(t, root, "index.html", 10)
	assert.True(t, m.HasIndex())
}

func TestHasIndexRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "index.html"), 0755))

	m := NewManager(root)
	assert.False(t, m.HasIndex())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.bytes))
	}
}
