// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON responses, error responses,
// and common HTTP middleware patterns used by the documentation server.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, data)
//
// Error responses:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteNotFoundError(w, "service not found")
//	httputil.WriteInternalError(w, err)
//
// # Middleware
//
//	router.Use(httputil.RequestIDMiddleware)
//	router.Use(httputil.LoggingMiddleware(log))
//	router.Use(httputil.RecoveryMiddleware(log))
//
// # Related Packages
//
//   - pkg/observability: Prometheus instrumentation middleware
package httputil
