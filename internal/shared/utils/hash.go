package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// HashAlgorithm represents the hashing algorithm to use
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "sha256"
	// Extensible: add more algorithms here
	// SHA512 HashAlgorithm = "sha512"
	// BLAKE3 HashAlgorithm = "blake3"
)

// Hasher provides extensible hashing functionality
type Hasher struct {
	algorithm HashAlgorithm
}

// NewHasher creates a new hasher with the specified algorithm
func NewHasher(algorithm HashAlgorithm) *Hasher {
	return &Hasher{
		algorithm: algorithm,
	}
}

// DefaultHasher returns a hasher with the default algorithm
func DefaultHasher() *Hasher {
	return NewHasher(SHA256)
}

// Hash computes a hash of the input data
func (h *Hasher) Hash(data []byte) string {
	switch h.algorithm {
	case SHA256:
		hash := sha256.Sum256(data)
		return hex.EncodeToString(hash[:])
	// Extensible: add more cases here
	default:
		// Fallback to SHA256
		hash := sha256.Sum256(data)
		return hex.EncodeToString(hash[:])
	}
}

// HashString computes a hash of a string
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

// HashFields computes a hash from multiple fields
// Fields are concatenated with a delimiter for consistent hashing
func (h *Hasher) HashFields(fields ...string) string {
	// Sort fields for deterministic ordering
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)

	combined := strings.Join(sorted, "|")
	return h.HashString(combined)
}

// ETagger derives entity tags for served files
type ETagger struct {
	hasher *Hasher
}

// NewETagger creates a new entity tag generator
func NewETagger(hasher *Hasher) *ETagger {
	if hasher == nil {
		hasher = DefaultHasher()
	}
	return &ETagger{hasher: hasher}
}

// ForFile derives a deterministic ETag from a file's identity.
// The same path, size, and modification time always produce the same tag,
// so unchanged files validate across restarts.
func (e *ETagger) ForFile(path string, size int64, modTime time.Time) string {
	sum := e.hasher.HashFields(
		fmt.Sprintf("path:%s", path),
		fmt.Sprintf("size:%d", size),
		fmt.Sprintf("mtime:%d", modTime.UnixNano()),
	)
	return `"` + sum[:32] + `"`
}

// Matches reports whether an If-None-Match header value matches the tag.
// Handles the wildcard form and comma-separated candidate lists.
func (e *ETagger) Matches(headerValue, tag string) bool {
	if headerValue == "" {
		return false
	}
	if strings.TrimSpace(headerValue) == "*" {
		return true
	}
	for _, candidate := range strings.Split(headerValue, ",") {
		candidate = strings.TrimSpace(candidate)
		// Weak validators compare equal for GET
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == tag {
			return true
		}
	}
	return false
}
