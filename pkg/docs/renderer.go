package docs

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/protodoc/pkg/schema"
)

const (
	// DefaultTitle heads the document when no title is configured.
	DefaultTitle = "API Reference"

	// DefaultBaseURL is the placeholder host used in example commands.
	DefaultBaseURL = "https://api.example.com"

	noDescription = "No description available"
)

// displayTypes maps scalar type names to their documentation vocabulary.
var displayTypes = map[string]string{
	"string": "string",
	"int32":  "integer",
	"int64":  "integer",
	"bool":   "boolean",
	"double": "number",
	"float":  "number",
	"bytes":  "string (base64)",
}

// bodyVerbs are the HTTP methods whose examples carry a JSON request body.
var bodyVerbs = map[string]bool{"POST": true, "PUT": true, "PATCH": true}

// Renderer turns a qualified registry into one self-contained HTML document.
// The reference graph is computed once per Renderer; construct a new one to
// pick up registry changes.
type Renderer struct {
	registry  *schema.Registry
	templates TemplateSource
	title     string
	baseURL   string
	log       *logrus.Logger
	refGraph  *ReferenceGraph
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithTitle overrides the document title.
func WithTitle(title string) RendererOption {
	return func(r *Renderer) { r.title = title }
}

// WithBaseURL overrides the placeholder host in example commands.
func WithBaseURL(baseURL string) RendererOption {
	return func(r *Renderer) { r.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithLogger sets the logger used for template-fallback warnings.
func WithLogger(log *logrus.Logger) RendererOption {
	return func(r *Renderer) { r.log = log }
}

// NewRenderer creates a renderer over a registry. A nil template source
// falls back to the embedded assets.
func NewRenderer(reg *schema.Registry, templates TemplateSource, opts ...RendererOption) *Renderer {
	r := &Renderer{
		registry:  reg,
		templates: templates,
		title:     DefaultTitle,
		baseURL:   DefaultBaseURL,
		log:       logrus.New(),
	}
	if r.templates == nil {
		r.templates = EmbeddedTemplates{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the full HTML document. Rendering never fails: missing
// templates degrade to built-in fallbacks, unresolvable types degrade to
// omitted sections.
func (r *Renderer) Render() string {
	head := r.loadTemplate(TemplateHead)
	footer := r.loadTemplate(TemplateFooter)
	script := r.loadTemplate(TemplateScript)

	var doc []string
	doc = append(doc, renderTemplate(head, map[string]string{"title": r.title}))
	doc = append(doc, r.renderSidebar())

	doc = append(doc, `<main class="main-content">`)
	doc = append(doc, `<div class="content-section">`)
	doc = append(doc, "<h1>"+html.EscapeString(r.title)+"</h1>")
	doc = append(doc, "</div>")

	for _, name := range r.registry.ServiceNames() {
		doc = append(doc, r.renderService(r.registry.Services[name])...)
	}

	doc = append(doc, r.renderTypesSection()...)
	doc = append(doc, "</main>")

	doc = append(doc, renderTemplate(footer, map[string]string{"javascript": script}))
	return strings.Join(doc, "\n")
}

func (r *Renderer) loadTemplate(name string) string {
	tmpl, err := r.templates.ReadTemplate(name)
	if err != nil {
		r.log.Warnf("Template %s not found, using fallback: %v", name, err)
		return fallbackTemplate(name)
	}
	return tmpl
}

// referencedTypes memoizes the reference graph for this renderer's lifetime.
func (r *Renderer) referencedTypes() *ReferenceGraph {
	if r.refGraph == nil {
		r.refGraph = CollectReferencedTypes(r.registry)
	}
	return r.refGraph
}

// appendixEntry pairs a referenced type with its deduplicated simple name.
type appendixEntry struct {
	simpleName string
	typ        *ReferencedType
}

// appendixTypes returns the referenced types for the appendix and type
// navigation: deduplicated by simple name (first seen wins) and sorted
// alphabetically by simple name.
func (r *Renderer) appendixTypes() []appendixEntry {
	graph := r.referencedTypes()
	seen := make(map[string]bool)
	var entries []appendixEntry
	for _, name := range graph.Names() {
		simple := schema.SimpleName(name)
		if seen[simple] {
			continue
		}
		seen[simple] = true
		typ, _ := graph.Lookup(name)
		entries = append(entries, appendixEntry{simpleName: simple, typ: typ})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].simpleName < entries[j].simpleName
	})
	return entries
}

func (r *Renderer) renderSidebar() string {
	nav := []string{
		`<nav class="sidebar">`,
		`<div class="sidebar-content">`,
		`<div class="search-container">`,
		`<input type="text" class="search-input" id="searchInput" placeholder="Search services and types...">`,
		`<div class="search-results" id="searchResults"></div>`,
		`</div>`,
		`<h2>Services</h2>`,
		`<ul class="nav-list">`,
	}

	for _, name := range r.registry.ServiceNames() {
		service := r.registry.Services[name]
		nav = append(nav, `<li class="nav-item">`)
		nav = append(nav, fmt.Sprintf(`<a href="#%s" class="nav-link">%s</a>`,
			strings.ToLower(service.Name), html.EscapeString(service.Name)))
		nav = append(nav, `<ul class="nav-sublist">`)
		for _, method := range service.Methods {
			nav = append(nav, `<li>`)
			nav = append(nav, fmt.Sprintf(`<a href="#%s" class="nav-sublink">%s</a>`,
				strings.ToLower(method.Name), html.EscapeString(method.Name)))
			nav = append(nav, `</li>`)
		}
		nav = append(nav, `</ul>`)
		nav = append(nav, `</li>`)
	}
	nav = append(nav, `</ul>`)

	if entries := r.appendixTypes(); len(entries) > 0 {
		nav = append(nav, `<h2>Types</h2>`)
		nav = append(nav, `<ul class="nav-list">`)
		for _, entry := range entries {
			nav = append(nav, `<li>`)
			nav = append(nav, fmt.Sprintf(`<a href="#ref-%s" class="nav-sublink">%s</a>`,
				strings.ToLower(entry.simpleName), html.EscapeString(entry.simpleName)))
			nav = append(nav, `</li>`)
		}
		nav = append(nav, `</ul>`)
	}

	nav = append(nav, `</div>`)
	nav = append(nav, `</nav>`)
	return strings.Join(nav, "\n")
}

func (r *Renderer) renderService(service *schema.Service) []string {
	doc := []string{`<div class="content-section">`}
	doc = append(doc, fmt.Sprintf(`<h2 id="%s">%s</h2>`,
		strings.ToLower(service.Name), html.EscapeString(service.Name)))

	if service.Comment != "" {
		doc = append(doc, "<p>"+html.EscapeString(service.Comment)+"</p>")
	}
	for _, method := range service.Methods {
		doc = append(doc, r.renderMethod(method, service)...)
	}

	doc = append(doc, `</div>`)
	return doc
}

func (r *Renderer) renderMethod(method *schema.Method, service *schema.Service) []string {
	var doc []string
	anchor := strings.ToLower(method.Name)

	doc = append(doc, `<div class="method-header">`)
	doc = append(doc, fmt.Sprintf(`<h3 id="%s">%s</h3>`, anchor, html.EscapeString(method.Name)))
	doc = append(doc, fmt.Sprintf(`<button class="link-button" data-anchor="%s" title="Copy link to this method">#</button>`, anchor))
	doc = append(doc, `</div>`)

	if pkg := r.registry.Packages[service.SourceFile]; pkg != "" {
		doc = append(doc, fmt.Sprintf(`<p><em>From package:</em> <code>%s</code></p>`, html.EscapeString(pkg)))
	}
	if method.Comment != "" {
		doc = append(doc, "<p>"+html.EscapeString(method.Comment)+"</p>")
	}

	if method.HTTPMethod != "" && method.HTTPPath != "" {
		doc = append(doc, `<div class="method-endpoint">`)
		doc = append(doc, fmt.Sprintf(`<code>%s %s</code>`,
			html.EscapeString(method.HTTPMethod), html.EscapeString(method.HTTPPath)))
		doc = append(doc, `</div>`)
	}

	if input, ok := r.registry.Messages[method.InputType]; ok {
		doc = append(doc, `<h4>Request</h4>`)
		doc = append(doc, r.renderFieldTable(input, true)...)
	}
	if output, ok := r.registry.Messages[method.OutputType]; ok {
		doc = append(doc, `<h4>Response</h4>`)
		doc = append(doc, r.renderFieldTable(output, false)...)
	}

	doc = append(doc, r.renderExample(method)...)
	doc = append(doc, `<div class="method-divider"></div>`)
	return doc
}

// renderFieldTable emits the parameter table for a message. Deprecated
// fields never appear.
func (r *Renderer) renderFieldTable(msg *schema.Message, isRequest bool) []string {
	if len(msg.Fields) == 0 {
		if isRequest {
			return []string{"<p>No parameters required.</p>"}
		}
		return []string{"<p>Empty response.</p>"}
	}

	doc := []string{
		`<table>`, `<thead>`, `<tr>`,
		`<th>Parameter</th>`, `<th>Type</th>`, `<th>Required</th>`, `<th>Description</th>`,
		`</tr>`, `</thead>`, `<tbody>`,
	}

	for _, field := range msg.Fields {
		if field.Deprecated {
			continue
		}
		required := "No"
		if field.Label == schema.LabelRequired {
			required = "Yes"
		}
		fieldType := r.formatType(field.Type, true)
		if field.Label == schema.LabelRepeated {
			fieldType = "Array&lt;" + fieldType + "&gt;"
		}
		description := noDescription
		if field.Comment != "" {
			description = field.Comment
		}

		doc = append(doc, `<tr>`)
		doc = append(doc, fmt.Sprintf(`<td><code>%s</code></td>`, html.EscapeString(field.Name)))
		doc = append(doc, "<td>"+fieldType+"</td>")
		doc = append(doc, "<td>"+required+"</td>")
		doc = append(doc, "<td>"+html.EscapeString(description)+"</td>")
		doc = append(doc, `</tr>`)
	}

	doc = append(doc, `</tbody>`, `</table>`)
	return doc
}

// formatType maps a type name to its display form. Non-scalar types link to
// their appendix anchor only when the reference graph admitted them, so the
// document never carries dangling links.
func (r *Renderer) formatType(typeName string, createLinks bool) string {
	base := strings.ToLower(schema.SimpleName(typeName))
	formatted, ok := displayTypes[base]
	if !ok {
		formatted = typeName
	}

	if createLinks {
		if _, referenced := r.referencedTypes().Lookup(typeName); referenced {
			return fmt.Sprintf(`<a href="#ref-%s">%s</a>`,
				strings.ToLower(schema.SimpleName(typeName)), html.EscapeString(formatted))
		}
	}
	return html.EscapeString(formatted)
}

func (r *Renderer) renderExample(method *schema.Method) []string {
	methodID := strings.ToLower(method.Name)
	hasHTTP := method.HTTPMethod != "" && method.HTTPPath != ""
	output, hasResponse := r.registry.Messages[method.OutputType]
	if !hasHTTP && !hasResponse {
		return nil
	}

	doc := []string{
		`<div class="example-section">`,
		`<h4>Example</h4>`,
		`<div class="tab-container">`,
		`<div class="tab-nav">`,
	}

	firstTab := true
	if hasHTTP {
		doc = append(doc, fmt.Sprintf(`<button class="tab-button active" data-tab="curl-%s">curl</button>`, methodID))
		doc = append(doc, fmt.Sprintf(`<button class="tab-button" data-tab="http-%s">HTTP</button>`, methodID))
		firstTab = false
	}
	if hasResponse {
		active := ""
		if firstTab {
			active = " active"
		}
		doc = append(doc, fmt.Sprintf(`<button class="tab-button%s" data-tab="response-%s">Response</button>`, active, methodID))
	}
	doc = append(doc, `</div>`)

	doc = append(doc, `<div class="tab-content">`)
	if hasHTTP {
		doc = append(doc, fmt.Sprintf(`<div class="tab-pane active" id="curl-%s">`, methodID))
		doc = append(doc, r.renderCurl(method)...)
		doc = append(doc, `</div>`)

		doc = append(doc, fmt.Sprintf(`<div class="tab-pane" id="http-%s">`, methodID))
		doc = append(doc, `<pre><code>`)
		doc = append(doc, html.EscapeString(method.HTTPMethod+" "+method.HTTPPath))
		doc = append(doc, "Content-Type: application/json")
		doc = append(doc, "Authorization: Bearer YOUR_API_KEY")
		doc = append(doc, "")
		if body := r.exampleRequestBody(method); body != "" {
			doc = append(doc, html.EscapeString(body))
		}
		doc = append(doc, `</code></pre>`)
		doc = append(doc, `</div>`)
	}
	if hasResponse {
		active := ""
		if firstTab {
			active = " active"
		}
		doc = append(doc, fmt.Sprintf(`<div class="tab-pane%s" id="response-%s">`, active, methodID))
		doc = append(doc, `<pre><code>`)
		doc = append(doc, html.EscapeString(ExamplePayload(r.registry, output)))
		doc = append(doc, `</code></pre>`)
		doc = append(doc, `</div>`)
	}
	doc = append(doc, `</div>`)

	doc = append(doc, `</div>`)
	doc = append(doc, `</div>`)
	return doc
}

// exampleRequestBody returns the JSON body for body-carrying verbs, or ""
// when the method takes no body.
func (r *Renderer) exampleRequestBody(method *schema.Method) string {
	if !bodyVerbs[method.HTTPMethod] {
		return ""
	}
	input, ok := r.registry.Messages[method.InputType]
	if !ok || len(input.Fields) == 0 {
		return ""
	}
	return ExamplePayload(r.registry, input)
}

func (r *Renderer) renderCurl(method *schema.Method) []string {
	parts := []string{"curl"}
	if method.HTTPMethod != "" && method.HTTPMethod != "GET" {
		parts = append(parts, "-X "+method.HTTPMethod)
	}
	parts = append(parts, fmt.Sprintf("%q", r.baseURL+method.HTTPPath))
	parts = append(parts,
		`-H "Content-Type: application/json"`,
		`-H "Authorization: Bearer YOUR_API_KEY"`,
	)
	if body := r.exampleRequestBody(method); body != "" {
		escaped := strings.ReplaceAll(body, "'", `'"'"'`)
		parts = append(parts, "-d '"+escaped+"'")
	}

	var command string
	if len(parts) <= 3 {
		command = strings.Join(parts, " ")
	} else {
		lines := []string{parts[0] + ` \`}
		for _, part := range parts[1 : len(parts)-1] {
			lines = append(lines, "  "+part+` \`)
		}
		lines = append(lines, "  "+parts[len(parts)-1])
		command = strings.Join(lines, "\n")
	}

	methodID := strings.ToLower(method.Name)
	doc := []string{`<div class="code-block-container">`}
	doc = append(doc, fmt.Sprintf(`<button class="copy-button" data-copy-target="curl-code-%s" title="Copy curl command">Copy</button>`, methodID))
	doc = append(doc, fmt.Sprintf(`<pre><code id="curl-code-%s" data-curl-command="%s">`, methodID, html.EscapeString(command)))
	doc = append(doc, html.EscapeString(command))
	doc = append(doc, `</code></pre>`)
	doc = append(doc, `</div>`)
	return doc
}

func (r *Renderer) renderTypesSection() []string {
	entries := r.appendixTypes()
	if len(entries) == 0 {
		return nil
	}

	doc := []string{`<div class="content-section">`}
	doc = append(doc, `<h2 id="types">Types</h2>`)
	doc = append(doc, `<p>This section documents all types from external packages used in this API.</p>`)

	for _, entry := range entries {
		anchor := "ref-" + strings.ToLower(entry.simpleName)

		doc = append(doc, `<div class="type-header">`)
		doc = append(doc, fmt.Sprintf(`<h4 id="%s">%s</h4>`, anchor, html.EscapeString(entry.simpleName)))
		doc = append(doc, fmt.Sprintf(`<button class="link-button" data-anchor="%s" title="Copy link to this type">#</button>`, anchor))
		doc = append(doc, `</div>`)
		doc = append(doc, fmt.Sprintf(`<p><em>From package:</em> <code>%s</code></p>`, html.EscapeString(entry.typ.Package)))

		switch {
		case entry.typ.Message != nil:
			doc = append(doc, r.renderReferencedMessage(entry.typ.Message)...)
		case entry.typ.Enum != nil:
			doc = append(doc, r.renderReferencedEnum(entry.typ.Enum)...)
		}

		doc = append(doc, `<div style="margin-bottom: 2rem;"></div>`)
	}

	doc = append(doc, `</div>`)
	return doc
}

func (r *Renderer) renderReferencedMessage(msg *schema.Message) []string {
	var doc []string
	if msg.Comment != "" {
		doc = append(doc, "<p>"+html.EscapeString(msg.Comment)+"</p>")
	}
	if len(msg.Fields) == 0 {
		doc = append(doc, "<p>No fields defined.</p>")
		return doc
	}

	doc = append(doc,
		`<table>`, `<thead>`, `<tr>`,
		`<th>Field</th>`, `<th>Type</th>`, `<th>Description</th>`,
		`</tr>`, `</thead>`, `<tbody>`,
	)
	for _, field := range msg.Fields {
		if field.Deprecated {
			continue
		}
		fieldType := r.formatType(field.Type, true)
		if field.Label == schema.LabelRepeated {
			fieldType = "Array&lt;" + fieldType + "&gt;"
		}
		description := noDescription
		if field.Comment != "" {
			description = field.Comment
		}
		doc = append(doc, `<tr>`)
		doc = append(doc, fmt.Sprintf(`<td><code>%s</code></td>`, html.EscapeString(field.Name)))
		doc = append(doc, "<td>"+fieldType+"</td>")
		doc = append(doc, "<td>"+html.EscapeString(description)+"</td>")
		doc = append(doc, `</tr>`)
	}
	doc = append(doc, `</tbody>`, `</table>`)
	return doc
}

func (r *Renderer) renderReferencedEnum(enum *schema.Enum) []string {
	var doc []string
	if enum.Comment != "" {
		doc = append(doc, "<p>"+html.EscapeString(enum.Comment)+"</p>")
	}
	if len(enum.Values) == 0 {
		doc = append(doc, "<p>No enum values defined.</p>")
		return doc
	}

	doc = append(doc, `<p><strong>Enum Values:</strong></p>`)
	doc = append(doc,
		`<table>`, `<thead>`, `<tr>`,
		`<th>Name</th>`, `<th>Value</th>`,
		`</tr>`, `</thead>`, `<tbody>`,
	)
	for _, name := range sortedEnumValues(enum) {
		doc = append(doc, `<tr>`)
		doc = append(doc, fmt.Sprintf(`<td><code>%s</code></td>`, html.EscapeString(name)))
		doc = append(doc, fmt.Sprintf(`<td>%d</td>`, enum.Values[name]))
		doc = append(doc, `</tr>`)
	}
	doc = append(doc, `</tbody>`, `</table>`)
	return doc
}
