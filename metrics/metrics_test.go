package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollectorRecordsGeneration(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveGeneration("generate_application", 120*time.Millisecond, nil)
	c.ObserveGeneration("generate_application", 80*time.Millisecond, errors.New("boom"))
	c.ObserveUploadFailure()

	body := scrape(t, reg)
	assert.Contains(t, body, `grantflow_generation_total{operation="generate_application"} 2`)
	assert.Contains(t, body, `grantflow_generation_fail_total{operation="generate_application"} 1`)
	assert.Contains(t, body, "grantflow_upload_fail_total 1")
	assert.Contains(t, body, "grantflow_generation_latency_seconds_count")
}

func TestMiddlewareCountsStatuses(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/ok", "/ok", "/missing"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, reg)
	assert.Contains(t, body, `grantflow_http_status_total{status_code="200"} 2`)
	assert.Contains(t, body, `grantflow_http_status_total{status_code="404"} 1`)
}
