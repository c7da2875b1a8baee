/*
Package resolver maps requested URL paths to files inside a serving root.

# Overview

A Resolver is bound to one root directory and answers a single question:
which regular file, if any, does a requested path name? Lookups are
stateless and deterministic; nothing is cached between calls.

Containment is enforced lexically before any filesystem access. A name
whose cleaned form would land outside the root is rejected, while dot
segments that stay inside the root are permitted. Directories are never
resolved, and any filesystem error collapses to a miss so callers can
answer every failure the same way.

# Case-Insensitive Fallback

Roots holding scraped image files often disagree in case with the HTML
that references them. With WithCaseFallback enabled, a missed lookup for
a bare name (no "/") scans the root's entries and accepts a match when
exactly one entry's lowercase form equals the requested name's lowercase
form. Ambiguous names miss.

# Usage

	site := resolver.New(root, resolver.ScopeSite).WithMetrics(m)
	images := resolver.New(paths.ImageRoot(root), resolver.ScopeImages).
		WithCaseFallback().
		WithMetrics(m)

	if res, ok := images.Resolve("photo.jpg"); ok {
		// serve res.Path
	}
*/
package resolver
