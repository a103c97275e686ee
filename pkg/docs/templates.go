package docs

import (
	"embed"
	"strings"
)

//go:embed templates/*
var templateFS embed.FS

// Template asset names understood by the renderer.
const (
	TemplateHead   = "html_head.html"
	TemplateFooter = "html_footer.html"
	TemplateScript = "scripts.js"
)

// TemplateSource supplies the renderer's template assets by name. A missing
// asset is an error; the renderer falls back to a built-in minimal template
// and keeps going.
type TemplateSource interface {
	ReadTemplate(name string) (string, error)
}

// EmbeddedTemplates serves the assets compiled into the binary. It is the
// default source when no on-disk template directory is configured.
type EmbeddedTemplates struct{}

// ReadTemplate returns the embedded copy of the named asset.
func (EmbeddedTemplates) ReadTemplate(name string) (string, error) {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// fallbackTemplate provides a minimal stand-in when a template asset cannot
// be read from any source.
func fallbackTemplate(name string) string {
	switch name {
	case TemplateHead:
		return `<!DOCTYPE html><html><head><meta charset="UTF-8"><title>{title}</title></head><body><div class="container">`
	case TemplateFooter:
		return `</div><script>{javascript}</script></body></html>`
	case TemplateScript:
		return "// Fallback JavaScript"
	}
	return ""
}

// renderTemplate substitutes the named placeholders an asset may carry.
func renderTemplate(tmpl string, subs map[string]string) string {
	for key, value := range subs {
		tmpl = strings.ReplaceAll(tmpl, "{"+key+"}", value)
	}
	return tmpl
}
