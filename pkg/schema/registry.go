package schema

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SchemaSource lists and reads schema files for ingestion. Implementations
// live outside the core; pkg/storage provides a filesystem-backed one.
type SchemaSource interface {
	ListSchemaFiles() ([]string, error)
	ReadSchemaFile(path string) (string, error)
}

// IngestObserver receives ingestion outcomes for instrumentation. A nil
// observer is allowed; pkg/observability.Metrics implements this interface.
type IngestObserver interface {
	SchemaFileParsed(ok bool)
	SchemaEntities(services, methods, messages, enums int)
}

// Registry aggregates declarations across schema files. Entities are keyed by
// simple name during ingestion; Qualify adds "<package>.<name>" aliases that
// reference the same entity. Duplicate simple names across files resolve
// last-write-wins; that is a policy, not an accident, so later files shadow
// earlier ones instead of merging.
type Registry struct {
	Messages map[string]*Message
	Services map[string]*Service
	Enums    map[string]*Enum

	// Packages maps file path to declared package; Imports records each
	// file's import list (informational, not transitively resolved).
	Packages map[string]string
	Imports  map[string][]string

	serviceOrder []string
	log          *logrus.Logger
	observer     IngestObserver
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.New()
	}
	return &Registry{
		Messages: make(map[string]*Message),
		Services: make(map[string]*Service),
		Enums:    make(map[string]*Enum),
		Packages: make(map[string]string),
		Imports:  make(map[string][]string),
		log:      log,
	}
}

// SetObserver attaches an ingestion observer. Call before IngestSource.
func (r *Registry) SetObserver(obs IngestObserver) {
	r.observer = obs
}

// Ingest extracts declarations from one file's text and merges them into the
// registry under their simple names.
func (r *Registry) Ingest(path, content string) {
	decls := ExtractFile(path, content)

	if decls.Package != "" {
		r.Packages[path] = decls.Package
	}
	if len(decls.Imports) > 0 {
		r.Imports[path] = decls.Imports
	}

	for _, svc := range decls.Services {
		r.addService(svc)
	}
	for _, msg := range decls.Messages {
		r.Messages[msg.Name] = msg
	}
	for _, enum := range decls.Enums {
		r.Enums[enum.Name] = enum
	}
}

func (r *Registry) addService(svc *Service) {
	if _, exists := r.Services[svc.Name]; !exists {
		r.serviceOrder = append(r.serviceOrder, svc.Name)
	}
	r.Services[svc.Name] = svc
}

// IngestSource ingests every schema file the source lists. Per-file read
// failures are reported as warnings and skipped; a failure to list the source
// at all is returned to the caller.
func (r *Registry) IngestSource(src SchemaSource) error {
	files, err := src.ListSchemaFiles()
	if err != nil {
		return fmt.Errorf("failed to list schema files: %w", err)
	}

	parsed := 0
	for _, file := range files {
		content, err := src.ReadSchemaFile(file)
		if err != nil {
			r.log.Warnf("Failed to parse %s: %v", file, err)
			r.observeFile(false)
			continue
		}
		r.Ingest(file, content)
		r.observeFile(true)
		parsed++
	}
	r.reportEntities()

	r.log.WithFields(logrus.Fields{
		"files":    parsed,
		"services": len(r.Services),
		"methods":  r.methodCount(),
		"messages": len(r.Messages),
		"enums":    len(r.Enums),
		"packages": len(r.Packages),
	}).Info("Schema ingestion complete")
	return nil
}

func (r *Registry) observeFile(ok bool) {
	if r.observer != nil {
		r.observer.SchemaFileParsed(ok)
	}
}

// reportEntities publishes entity counts to the observer. The maps hold both
// simple and qualified keys for the same entity, so counting dedupes by
// pointer identity.
func (r *Registry) reportEntities() {
	if r.observer == nil {
		return
	}
	messages := make(map[*Message]bool, len(r.Messages))
	for _, msg := range r.Messages {
		messages[msg] = true
	}
	enums := make(map[*Enum]bool, len(r.Enums))
	for _, enum := range r.Enums {
		enums[enum] = true
	}
	r.observer.SchemaEntities(len(r.Services), r.methodCount(), len(messages), len(enums))
}

func (r *Registry) methodCount() int {
	count := 0
	for _, name := range r.serviceOrder {
		count += len(r.Services[name].Methods)
	}
	return count
}

// ServiceNames returns service names in ingestion order. Rendering iterates
// this order so output is deterministic across runs.
func (r *Registry) ServiceNames() []string {
	names := make([]string, len(r.serviceOrder))
	copy(names, r.serviceOrder)
	return names
}

// FilterService returns a registry narrowed to exactly one service. Type and
// package state is shared with the receiver; only the service set shrinks. An
// unknown name is an error for the caller to treat as fatal.
func (r *Registry) FilterService(name string) (*Registry, error) {
	svc, ok := r.Services[name]
	if !ok {
		return nil, fmt.Errorf("service %q not found (available: %v)", name, r.serviceOrder)
	}

	filtered := *r
	filtered.Services = map[string]*Service{name: svc}
	filtered.serviceOrder = []string{name}
	return &filtered, nil
}
