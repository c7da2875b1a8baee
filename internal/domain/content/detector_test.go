package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestDetectByExtension(t *testing.T) {
	dir := t.TempDir()
	d := NewDetector()

	// The platform mime table may or may not declare charsets, so text
	// types are matched by prefix and charset presence.
	tests := []struct {
		name       string
		data       []byte
		wantPrefix string
		wantText   bool
	}{
		{"index.html", []byte("<html><body>hi</body></html>"), "text/html", true},
		{"style.css", []byte("body { color: red }"), "text/css", true},
		{"photo.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "image/jpeg", false},
		{"photo.PNG", []byte{0x89, 'P', 'N', 'G'}, "image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.data)
			typ := d.Detect(path)
			assert.True(t, strings.HasPrefix(typ, tt.wantPrefix), "got %q", typ)
			if tt.wantText {
				assert.Contains(t, typ, "charset=")
			} else {
				assert.Equal(t, tt.wantPrefix, typ)
			}
		})
	}
}

func TestDetectBySniffing(t *testing.T) {
	dir := t.TempDir()
	d := NewDetector()

	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, []byte("JFIF")...)
	path := writeFile(t, dir, "noext", jpeg)
	assert.Equal(t, "image/jpeg", d.Detect(path))

	path = writeFile(t, dir, "readme", []byte("plain text content here\n"))
	typ := d.Detect(path)
	assert.True(t, strings.HasPrefix(typ, "text/plain"), "got %q", typ)
}

func TestDetectMissingFile(t *testing.T) {
	d := NewDetector()
	assert.Equal(t, DefaultType, d.Detect(filepath.Join(t.TempDir(), "noext-gone")))
}

func TestWithCharsetFillsMissing(t *testing.T) {
	dir := t.TempDir()
	d := NewDetector()

	// Valid multi-byte utf-8 sample.
	utf8Path := writeFile(t, dir, "utf8.md", []byte("héllo wörld café résumé naïve übung\n"))
	typ := d.withCharset(utf8Path, "text/markdown")
	assert.Equal(t, "text/markdown; charset=utf-8", typ)

	// Legacy single-byte encoding should yield some non-empty charset.
	latin := []byte("caf\xe9 r\xe9sum\xe9 na\xefve d\xe9j\xe0 vu fa\xe7ade\n")
	latinPath := writeFile(t, dir, "latin.md", latin)
	typ = d.withCharset(latinPath, "text/markdown")
	assert.Contains(t, typ, "charset=")
}

func TestWithCharsetLeavesDeclared(t *testing.T) {
	dir := t.TempDir()
	d := NewDetector()

	path := writeFile(t, dir, "page.html", []byte("<html></html>"))
	assert.Equal(t, "text/html; charset=utf-8", d.withCharset(path, "text/html; charset=utf-8"))
}

func TestWithCharsetSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	d := NewDetector()

	path := writeFile(t, dir, "photo.jpg", []byte{0xFF, 0xD8})
	assert.Equal(t, "image/jpeg", d.withCharset(path, "image/jpeg"))
}

func TestWithCharsetEmptyFile(t *testing.T) {
	dir := t.TempDir()
	d := NewDetector()

	path := writeFile(t, dir, "empty.md", nil)
	assert.Equal(t, "text/markdown", d.withCharset(path, "text/markdown"))
}
