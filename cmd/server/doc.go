// Package main is the entry point for the snapshot file server.
//
// The server exposes a scraped site snapshot over HTTP: the page
// archive at the root, captured image assets under /images_scraped/,
// and operational endpoints for health and metrics.
//
// The server provides:
//   - Static snapshot serving with conditional requests (ETag, ranges)
//   - Case-insensitive recovery for image references
//   - Health inventory of the snapshot on disk
//   - Prometheus metrics, rate limiting, and response compression
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -root /srv/snapshot
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
