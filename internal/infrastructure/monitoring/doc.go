/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the backend
service, tracking HTTP requests, service tool calls and filesystem activity.
Each Metrics value owns its own registry, so several collectors can coexist
in one process (tests, embedded use).

# Features

- HTTP request metrics (latency, throughput, status)
- Service call metrics (duration, errors by kind)
- Search metrics (results per search)
- Write volume (bytes written by write and edit)
- Uptime

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time operations
	timer := monitoring.NewTimer(metrics, "filesystem", "read_file")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
