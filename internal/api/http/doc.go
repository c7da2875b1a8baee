// Package http provides HTTP handlers and routing for the snapshot server.
//
// This package implements all HTTP endpoints using the Gin framework:
// the snapshot entry page, arbitrary snapshot files, scraped images with
// a case-insensitive fallback, and health reporting.
//
// Endpoints:
//   - Entry page: /
//   - Snapshot files: any unmatched GET or HEAD path (NoRoute)
//   - Scraped images: /images_scraped/*filepath
//   - Health: /health
//   - Metrics: /metrics (Prometheus)
//
// Features:
//   - Conditional requests via ETag and Last-Modified
//   - Content type inference with charset detection
//   - Uniform 404 responses for every serving failure
//
// Example Usage:
//
//	handlers := http.NewHandlers(site, images, snapshotMgr, detector, etagger, metrics, logger)
//	router.GET("/", handlers.Root)
//	router.NoRoute(handlers.ServeFile)
package http
