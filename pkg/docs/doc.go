// Package docs renders a qualified schema registry into a single
// self-contained HTML reference document.
//
// # Overview
//
// The renderer is a pure function over an immutable registry: it walks the
// services in declaration order, emits a navigation sidebar, one section per
// service with one block per method, synthesized example payloads (curl, raw
// HTTP, JSON response), and a cross-referenced appendix of external types
// discovered by the reference graph.
//
// # Reference Graph
//
// CollectReferencedTypes performs a bounded-depth walk (two levels past the
// method signature) over the field types reachable from every method's input
// and output messages. Types owned by a service-declaring package are
// excluded, as are generically-named types (Status, Error, Metadata, ...)
// and well-known wrappers outside a small allow-list. The result is memoized
// per Renderer; constructing a new Renderer recomputes it.
//
// # Templates
//
// Three assets shape the document shell: html_head.html (with a {title}
// placeholder), html_footer.html (with {javascript}), and scripts.js. They
// are loaded from a TemplateSource; a missing asset degrades to a built-in
// minimal fallback rather than failing the render.
//
// # Usage Example
//
//	renderer := docs.NewRenderer(registry, docs.EmbeddedTemplates{},
//		docs.WithTitle("My API"),
//	)
//	document := renderer.Render()
//
// # Related Packages
//
//   - pkg/schema: registry construction and qualification
//   - pkg/storage: on-disk template and output handling
package docs
