// Package schema extracts structured declarations from protobuf schema files
// and aggregates them into a registry for documentation rendering.
//
// # Overview
//
// The extractor deliberately avoids a full protobuf grammar. Declarations are
// recovered from plain text with regular expressions anchored at keyword
// starts, and block extents are found by counting braces (MatchBrace). This
// handles the schema subset needed for API reference generation without
// pulling in a compiler toolchain.
//
// # Pipeline
//
// Ingestion is a single synchronous pass:
//
//	reg := schema.NewRegistry(log)
//	if err := reg.IngestSource(src); err != nil { ... }
//	reg.SeedBuiltins()
//	reg.Qualify()
//
// After Qualify the registry is read-only. Types are addressable both by
// simple name ("Timestamp") and by qualified name ("google.protobuf.Timestamp");
// both keys reference the same entity.
//
// # Known Limitations
//
// Comment stripping is a naive pattern pass with no exemption for string
// literals, and message bodies are matched with a regex that tolerates only
// one level of nested braces. Both limitations are deliberate; see the
// extractor documentation.
//
// # Related Packages
//
//   - pkg/docs: renders a registry into an HTML reference document
//   - pkg/storage: filesystem schema sources consumed by IngestSource
package schema
