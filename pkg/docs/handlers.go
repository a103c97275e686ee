package docs

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/protodoc/pkg/httputil"
	"github.com/platinummonkey/protodoc/pkg/observability"
	"github.com/platinummonkey/protodoc/pkg/schema"
)

const defaultCacheSize = 16

// PreviewServer serves rendered documentation over HTTP so maintainers can
// browse the reference while editing schemas. Rendered documents are cached
// per service filter; Reload swaps the registry and purges the cache.
type PreviewServer struct {
	mu         sync.RWMutex
	registry   *schema.Registry
	generation uint64
	templates  TemplateSource
	title      string
	baseURL    string
	cache      *lru.Cache[string, string]
	metrics    *observability.Metrics
	log        *logrus.Logger
}

// PreviewConfig configures a PreviewServer. Zero values fall back to the
// renderer defaults, the embedded templates, and a small cache.
type PreviewConfig struct {
	Title     string
	BaseURL   string
	Templates TemplateSource
	Metrics   *observability.Metrics
	CacheSize int
	Log       *logrus.Logger
}

// NewPreviewServer creates a preview server over a qualified registry.
func NewPreviewServer(reg *schema.Registry, cfg PreviewConfig) (*PreviewServer, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}

	s := &PreviewServer{
		registry:  reg,
		templates: cfg.Templates,
		title:     cfg.Title,
		baseURL:   cfg.BaseURL,
		cache:     cache,
		metrics:   cfg.Metrics,
		log:       cfg.Log,
	}
	if s.templates == nil {
		s.templates = EmbeddedTemplates{}
	}
	if s.title == "" {
		s.title = DefaultTitle
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	return s, nil
}

// RegisterRoutes registers the documentation routes.
func (s *PreviewServer) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/docs", s.getDocs).Methods("GET")
	router.HandleFunc("/docs/{service}", s.getServiceDocs).Methods("GET")
	router.HandleFunc("/healthz", s.getHealth).Methods("GET")
}

// getDocs handles GET /docs
func (s *PreviewServer) getDocs(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, "")
}

// getServiceDocs handles GET /docs/{service}
func (s *PreviewServer) getServiceDocs(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, mux.Vars(r)["service"])
}

// getHealth handles GET /healthz
func (s *PreviewServer) getHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	services := len(s.registry.ServiceNames())
	s.mu.RUnlock()

	httputil.WriteSuccess(w, map[string]any{
		"status":   "ok",
		"services": services,
	})
}

// serveDocument renders (or serves from cache) the document for one service
// filter; an empty filter means all services.
func (s *PreviewServer) serveDocument(w http.ResponseWriter, service string) {
	if doc, ok := s.cache.Get(service); ok {
		s.countCache(true)
		writeHTML(w, doc)
		return
	}
	s.countCache(false)

	s.mu.RLock()
	reg := s.registry
	generation := s.generation
	s.mu.RUnlock()

	if service != "" {
		filtered, err := reg.FilterService(service)
		if err != nil {
			httputil.WriteNotFoundError(w, err.Error())
			return
		}
		reg = filtered
	}

	start := time.Now()
	renderer := NewRenderer(reg, s.templates,
		WithTitle(s.title),
		WithBaseURL(s.baseURL),
		WithLogger(s.log),
	)
	doc := renderer.Render()
	if s.metrics != nil {
		s.metrics.ObserveRender(time.Since(start), len(doc))
	}

	s.cacheIfCurrent(generation, service, doc)
	writeHTML(w, doc)
}

// cacheIfCurrent inserts a rendered document only if no Reload happened since
// the registry was snapshotted; otherwise the document is stale and a cache
// insert would outlive the purge.
func (s *PreviewServer) cacheIfCurrent(generation uint64, service, doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation == s.generation {
		s.cache.Add(service, doc)
	}
}

// Reload replaces the registry and invalidates all cached documents. The
// incoming registry must already be qualified.
func (s *PreviewServer) Reload(reg *schema.Registry) {
	s.mu.Lock()
	s.registry = reg
	s.generation++
	s.cache.Purge()
	s.mu.Unlock()
	s.log.WithField("services", len(reg.ServiceNames())).Info("Documentation reloaded")
}

func (s *PreviewServer) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues("document").Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues("document").Inc()
	}
}

func writeHTML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}
