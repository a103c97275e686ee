package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersAll(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	require.NotNil(t, metrics)

	metrics.HTTPRequestsTotal.WithLabelValues("GET", "/docs", "200").Inc()
	metrics.SchemaFilesParsedTotal.WithLabelValues("success").Inc()
	metrics.SchemaEntitiesTotal.WithLabelValues("message").Set(4)
	metrics.CacheHitsTotal.WithLabelValues("document").Inc()
	metrics.CacheMissesTotal.WithLabelValues("document").Inc()
	metrics.ObserveRender(25*time.Millisecond, 2048)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	for _, expected := range []string{
		"protodoc_http_requests_total",
		"protodoc_schema_files_parsed_total",
		"protodoc_schema_entities_total",
		"protodoc_renders_total",
		"protodoc_render_duration_seconds",
		"protodoc_document_bytes",
		"protodoc_cache_hits_total",
		"protodoc_cache_misses_total",
	} {
		assert.True(t, names[expected], "missing metric family %s", expected)
	}

	assert.Equal(t, float64(2048), testutil.ToFloat64(metrics.DocumentBytes))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RendersTotal.WithLabelValues("success")))
}

func TestSchemaIngestionMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.SchemaFileParsed(true)
	metrics.SchemaFileParsed(true)
	metrics.SchemaFileParsed(false)
	metrics.SchemaEntities(1, 3, 6, 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.SchemaFilesParsedTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SchemaFilesParsedTotal.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SchemaEntitiesTotal.WithLabelValues("service")))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.SchemaEntitiesTotal.WithLabelValues("method")))
	assert.Equal(t, float64(6), testutil.ToFloat64(metrics.SchemaEntitiesTotal.WithLabelValues("message")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.SchemaEntitiesTotal.WithLabelValues("enum")))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	handler := HTTPMetricsMiddleware(metrics)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("nope"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/docs/Missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	count := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/docs/Missing", "404"))
	assert.Equal(t, float64(1), count)
}

func TestMetricsHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	metrics.HTTPRequestsTotal.WithLabelValues("GET", "/docs", "200").Inc()

	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "protodoc_http_requests_total")
}
