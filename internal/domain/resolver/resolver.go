package resolver

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snapserve/snapserve/internal/infrastructure/monitoring"
	"github.com/snapserve/snapserve/internal/shared/paths"
)

// Scope names label metrics and logs per serving root.
const (
	ScopeSite   = "site"
	ScopeImages = "images"
)

// Resolution outcomes recorded per lookup.
const (
	outcomeHit      = "hit"
	outcomeFallback = "fallback"
	outcomeMiss     = "miss"
)

// Resolution describes a resolved regular file
type Resolution struct {
	Path        string    // absolute path on disk
	Name        string    // path relative to the root, slash-separated
	Size        int64
	ModTime     time.Time
	ViaFallback bool // matched via case-insensitive fallback
}

// Resolver maps requested paths to regular files under a single root.
// Every failure collapses to a miss: escapes, missing files, directories,
// and unreadable paths are indistinguishable to the caller.
type Resolver struct {
	root         string
	scope        string
	caseFallback bool
	metrics      *monitoring.Metrics
}

// New creates a resolver bound to a root directory
func New(root, scope string) *Resolver {
	return &Resolver{
		root:  filepath.Clean(root),
		scope: scope,
	}
}

// WithCaseFallback enables the case-insensitive fallback for
// single-segment names
func (r *Resolver) WithCaseFallback() *Resolver {
	r.caseFallback = true
	return r
}

// WithMetrics adds metrics tracking to the resolver
func (r *Resolver) WithMetrics(metrics *monitoring.Metrics) *Resolver {
	r.metrics = metrics
	return r
}

// Root returns the directory this resolver serves from
func (r *Resolver) Root() string {
	return r.root
}

// Scope returns the resolver's scope label
func (r *Resolver) Scope() string {
	return r.scope
}

// Resolve maps a requested path to a regular file under the root
func (r *Resolver) Resolve(name string) (Resolution, bool) {
	var timer *monitoring.Timer
	if r.metrics != nil {
		timer = monitoring.NewTimer(r.metrics, r.scope)
	}

	res, outcome := r.lookup(name)

	if timer != nil {
		timer.Stop(outcome)
	}
	return res, outcome != outcomeMiss
}

func (r *Resolver) lookup(name string) (Resolution, string) {
	if err := paths.ValidateName(name); err != nil {
		return Resolution{}, outcomeMiss
	}

	full, err := paths.SafeJoin(r.root, name)
	if err != nil {
		return Resolution{}, outcomeMiss
	}

	if res, ok := r.statFile(full); ok {
		return res, outcomeHit
	}

	// Fallback applies to bare names only; nested paths miss as-is.
	if r.caseFallback && !strings.Contains(name, "/") {
		if res, ok := r.fallbackLookup(name); ok {
			res.ViaFallback = true
			return res, outcomeFallback
		}
	}

	return Resolution{}, outcomeMiss
}

// statFile admits regular files only; directories and stat errors miss
func (r *Resolver) statFile(path string) (Resolution, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Resolution{}, false
	}

	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return Resolution{}, false
	}

	return Resolution{
		Path:    path,
		Name:    filepath.ToSlash(rel),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, true
}

// fallbackLookup scans the root for a unique case-insensitive match.
// Two entries sharing a lowercase form make the name ambiguous, and
// ambiguous names miss.
func (r *Resolver) fallbackLookup(name string) (Resolution, bool) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return Resolution{}, false
	}

	lower := strings.ToLower(name)
	match := ""
	for _, entry := range entries {
		if strings.ToLower(entry.Name()) != lower {
			continue
		}
		if match != "" {
			return Resolution{}, false
		}
		match = entry.Name()
	}
	if match == "" {
		return Resolution{}, false
	}

	full, err := paths.SafeJoin(r.root, match)
	if err != nil {
		return Resolution{}, false
	}
	return r.statFile(full)
}
