package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the documentation server.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Schema ingestion metrics
	SchemaFilesParsedTotal *prometheus.CounterVec
	SchemaEntitiesTotal    *prometheus.GaugeVec

	// Render metrics
	RendersTotal   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	DocumentBytes  prometheus.Gauge

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protodoc_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "protodoc_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "protodoc_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		SchemaFilesParsedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protodoc_schema_files_parsed_total",
				Help: "Total number of schema files parsed",
			},
			[]string{"status"},
		),
		SchemaEntitiesTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "protodoc_schema_entities_total",
				Help: "Number of entities in the schema registry",
			},
			[]string{"kind"},
		),

		RendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protodoc_renders_total",
				Help: "Total number of document renders",
			},
			[]string{"status"},
		),
		RenderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "protodoc_render_duration_seconds",
				Help:    "Document render duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		DocumentBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "protodoc_document_bytes",
				Help: "Size of the most recently rendered document in bytes",
			},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protodoc_cache_hits_total",
				Help: "Total number of rendered-document cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "protodoc_cache_misses_total",
				Help: "Total number of rendered-document cache misses",
			},
			[]string{"cache_type"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.SchemaFilesParsedTotal,
		m.SchemaEntitiesTotal,
		m.RendersTotal,
		m.RenderDuration,
		m.DocumentBytes,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// SchemaFileParsed counts one schema file ingestion outcome. Together with
// SchemaEntities this satisfies schema.IngestObserver.
func (m *Metrics) SchemaFileParsed(ok bool) {
	status := "success"
	if !ok {
		status = "failure"
	}
	m.SchemaFilesParsedTotal.WithLabelValues(status).Inc()
}

// SchemaEntities records the registry's entity counts by kind.
func (m *Metrics) SchemaEntities(services, methods, messages, enums int) {
	m.SchemaEntitiesTotal.WithLabelValues("service").Set(float64(services))
	m.SchemaEntitiesTotal.WithLabelValues("method").Set(float64(methods))
	m.SchemaEntitiesTotal.WithLabelValues("message").Set(float64(messages))
	m.SchemaEntitiesTotal.WithLabelValues("enum").Set(float64(enums))
}

// ObserveRender records one render outcome with its duration and size.
func (m *Metrics) ObserveRender(duration time.Duration, bytes int) {
	m.RendersTotal.WithLabelValues("success").Inc()
	m.RenderDuration.Observe(duration.Seconds())
	m.DocumentBytes.Set(float64(bytes))
}

// responseWriter wraps http.ResponseWriter to capture status code and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics.
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(rw.bytesWritten))
		})
	}
}

// Handler returns the /metrics endpoint handler for a registry.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
