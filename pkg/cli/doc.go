// Package cli provides the protodoc command-line interface.
//
// # Overview
//
// This package implements the `protodoc` CLI for generating an HTML API
// reference from a directory of schema files, and for serving it over HTTP
// with live reload while schemas are edited.
//
// # Commands
//
// generate: render the reference document to a file
//
//	protodoc generate \
//		-dir ./proto \
//		-out api_reference.html \
//		-service CloudService  # optional single-service filter
//
// serve: serve the reference over HTTP
//
//	protodoc serve -dir ./proto -watch
//
// The serve command exposes /docs, /docs/{service}, /healthz, and, when
// metrics are enabled, /metrics. With -watch, schema file changes rebuild
// the registry and invalidate the rendered-document cache.
//
// Configuration beyond the command flags comes from PROTODOC_* environment
// variables; see pkg/config.
//
// # Related Packages
//
//   - pkg/schema: parsing and registry construction
//   - pkg/docs: rendering and the preview server
//   - pkg/storage: schema, template, and output file I/O
package cli
