package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/mercia/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := httpx.NewMetrics(reg, "clients")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clients", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := httpx.Chain(mux, m.Middleware())

	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/clients", nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP clients_http_requests_total HTTP requests by method, route and status code.
# TYPE clients_http_requests_total counter
clients_http_requests_total{code="200",method="GET",route="GET /api/clients"} 2
clients_http_requests_total{code="404",method="GET",route="unmatched"} 1
`), "clients_http_requests_total"))

	n, err := testutil.GatherAndCount(reg, "clients_http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestNewMetricsRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := httpx.NewMetrics(reg, "clients")
	require.NoError(t, err)

	_, err = httpx.NewMetrics(reg, "clients")
	require.Error(t, err)
}
