package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/rolodex-api/internal/metrics"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	r := chi.NewRouter()
	r.Use(Metrics(collector))
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/users/A1", "/users/B2", "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP rolodex_http_requests_total Total number of HTTP requests
# TYPE rolodex_http_requests_total counter
rolodex_http_requests_total{method="GET",route="/health",status="200"} 1
rolodex_http_requests_total{method="GET",route="/users/{id}",status="404"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rolodex_http_requests_total"))
}

func TestMetrics_CollapsesUnknownMethods(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	handler := Metrics(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for _, method := range []string{"FOO", "BAR", "PROPFIND", http.MethodGet} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, "/", nil))
	}

	expected := `
# HELP rolodex_http_requests_total Total number of HTTP requests
# TYPE rolodex_http_requests_total counter
rolodex_http_requests_total{method="GET",route="unmatched",status="200"} 1
rolodex_http_requests_total{method="other",route="unmatched",status="200"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rolodex_http_requests_total"))
}

func TestMetrics_NilCollector(t *testing.T) {
	handler := Metrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
