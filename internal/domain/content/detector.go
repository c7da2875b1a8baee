package content

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// DefaultType is served when nothing better can be inferred
const DefaultType = "application/octet-stream"

// sampleSize bounds how much of a file charset detection reads
const sampleSize = 32 * 1024

// Detector infers Content-Type values for files on disk
type Detector struct{}

// NewDetector creates a content type detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect infers the Content-Type for a file. The extension mapping
// wins; files with unknown extensions are sniffed by content.
func (d *Detector) Detect(path string) string {
	typ := ""
	if ext := filepath.Ext(path); ext != "" {
		typ = mime.TypeByExtension(ext)
	}
	if typ == "" {
		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			return DefaultType
		}
		typ = mtype.String()
	}
	return d.withCharset(path, typ)
}

// withCharset fills in a missing charset parameter on text types.
// Scraped pages frequently carry legacy encodings, so the charset is
// sampled from the file rather than assumed.
func (d *Detector) withCharset(path, typ string) string {
	mediatype, params, err := mime.ParseMediaType(typ)
	if err != nil || !strings.HasPrefix(mediatype, "text/") {
		return typ
	}
	if params["charset"] != "" {
		return typ
	}

	cs := d.sampleCharset(path)
	if cs == "" {
		return typ
	}
	params["charset"] = cs
	return mime.FormatMediaType(mediatype, params)
}

// sampleCharset reads the head of a file and detects its encoding
func (d *Detector) sampleCharset(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, sampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}
	if n == 0 {
		return ""
	}

	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(buf[:n])
	if err != nil || result.Charset == "" {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
