// Package storage provides the filesystem I/O surrounding the documentation
// pipeline: locating and reading schema files, loading on-disk template
// overrides, and writing the rendered document.
//
// # Overview
//
// The core packages consume these types through small structural interfaces
// (schema.SchemaSource, docs.TemplateSource) so they never touch the
// filesystem directly. This keeps parsing and rendering pure and testable
// with in-memory fakes.
//
//   - SchemaDir: walks a directory tree for schema files
//   - TemplateDir: serves template assets from a directory
//   - DocumentWriter: writes the final document, enforcing the .html extension
//
// # Usage Example
//
//	source, err := storage.NewSchemaDir("./protos")
//	if err != nil {
//		log.Fatal(err)
//	}
//	reg := schema.NewRegistry(logger)
//	if err := reg.IngestSource(source); err != nil {
//		log.Fatal(err)
//	}
//
// # Related Packages
//
//   - pkg/schema: registry construction over a SchemaSource
//   - pkg/docs: rendering over a TemplateSource
package storage
