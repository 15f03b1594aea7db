// Package metrics collects and exposes Prometheus metrics: HTTP response
// counts by status code, and generation call counts, failures, and latency
// by operation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and updates the application's Prometheus metrics.
// It satisfies the generation service's Recorder interface.
type Collector struct {
	httpStatus        *prometheus.CounterVec
	generationTotal   *prometheus.CounterVec
	generationFail    *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	uploadFailures    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grantflow_http_status_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
		generationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grantflow_generation_total",
			Help: "Generation provider calls by operation",
		}, []string{"operation"}),
		generationFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grantflow_generation_fail_total",
			Help: "Failed generation provider calls by operation",
		}, []string{"operation"}),
		generationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grantflow_generation_latency_seconds",
			Help:    "Generation provider call latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		uploadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grantflow_upload_fail_total",
			Help: "Failed file uploads to the generation provider",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.generationTotal,
		c.generationFail,
		c.generationLatency,
		c.uploadFailures,
	)
	return c
}

// RecordHTTPStatus counts one HTTP response.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// ObserveGeneration records one provider call: its latency always, and a
// failure count when err is non-nil.
func (c *Collector) ObserveGeneration(operation string, duration time.Duration, err error) {
	c.generationTotal.WithLabelValues(operation).Inc()
	c.generationLatency.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		c.generationFail.WithLabelValues(operation).Inc()
	}
}

// ObserveUploadFailure counts one failed file upload.
func (c *Collector) ObserveUploadFailure() {
	c.uploadFailures.Inc()
}

// Middleware counts every response's status code.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		c.RecordHTTPStatus(sw.status)
	})
}

// statusWriter remembers the status code written to it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Handler returns the Prometheus scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
