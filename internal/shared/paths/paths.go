package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Snapshot layout
const (
	// IndexFile is served when the root of the snapshot is requested
	IndexFile = "index.html"

	// ImagesDir contains captured image assets, relative to the snapshot root
	ImagesDir = "images_scraped"
)

// SafeJoin joins a request name onto root, guaranteeing the result stays
// inside root. The name uses URL separators; escapes are rejected lexically
// before any filesystem access.
func SafeJoin(root, name string) (string, error) {
	if strings.HasPrefix(name, "/") || filepath.IsAbs(filepath.FromSlash(name)) {
		return "", fmt.Errorf("name cannot be an absolute path")
	}

	joined := filepath.Join(root, filepath.FromSlash(name))

	rel, err := filepath.Rel(root, joined)
	if err != nil {
		return "", fmt.Errorf("name cannot be resolved against root: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("name escapes the root")
	}

	return joined, nil
}

// ImageRoot returns the image asset directory for a snapshot root
func ImageRoot(root string) string {
	return filepath.Join(root, ImagesDir)
}

// ValidateName checks if a request name is valid for path construction.
// Names with interior ".." segments are left to SafeJoin, which decides by
// containment after cleaning.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("name cannot be an absolute path")
	}
	return nil
}
