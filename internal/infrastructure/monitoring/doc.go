/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the snapshot
server, tracking HTTP requests, file serving, path resolution, and system
metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- File serving metrics (files and bytes served per scope)
- Path resolution metrics (outcomes, duration)
- Conditional request metrics (304 responses)
- Snapshot inventory metrics (file count, total size)
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordFileServed("images", 2048)
	metrics.SetSnapshotFiles(120)

	// Time operations
	timer := monitoring.NewTimer(metrics, "site")
	// ... resolve a path ...
	timer.Stop("hit")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
