// Package observability provides Prometheus metrics for the documentation server.
//
// # Overview
//
// This package centralizes metrics collection: HTTP request instrumentation,
// schema ingestion counters, render timings, and rendered-document cache
// hit rates.
//
// # Prometheus Metrics
//
// Initialize metrics against a registry:
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.HTTPRequestsTotal.WithLabelValues("GET", "/docs", "200").Inc()
//
// Instrument an HTTP handler chain:
//
//	router.Use(observability.HTTPMetricsMiddleware(metrics))
//	router.Handle("/metrics", observability.Handler(registry))
//
// Record a render:
//
//	start := time.Now()
//	doc := renderer.Render()
//	metrics.ObserveRender(time.Since(start), len(doc))
//
// # Related Packages
//
//   - pkg/httputil: request ID, logging, and recovery middleware
package observability
