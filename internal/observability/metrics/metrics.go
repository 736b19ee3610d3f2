// Package metrics exposes Prometheus instrumentation for the extraction
// service on a dedicated registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	extractionsTotal   *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	similarityScore    prometheus.Histogram
}

func NewServerMetrics() *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docextract",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docextract",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docextract",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		},
	)
	extractionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docextract",
			Subsystem: "extract",
			Name:      "documents_total",
			Help:      "Total extraction attempts by sniffed format and outcome.",
		},
		[]string{"format", "status"},
	)
	extractionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docextract",
			Subsystem: "extract",
			Name:      "duration_seconds",
			Help:      "Full pipeline duration in seconds by sniffed format.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"format"},
	)
	similarityScore := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docextract",
			Subsystem: "extract",
			Name:      "similarity_score",
			Help:      "Distribution of markdown fidelity scores.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		extractionsTotal,
		extractionDuration,
		similarityScore,
	)

	return &ServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		extractionsTotal:   extractionsTotal,
		extractionDuration: extractionDuration,
		similarityScore:    similarityScore,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware instruments request count, duration and in-flight gauge.
func (m *ServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.requestTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// ObserveExtraction records one pipeline run.
func (m *ServerMetrics) ObserveExtraction(format, status string, seconds float64) {
	m.extractionsTotal.WithLabelValues(format, status).Inc()
	m.extractionDuration.WithLabelValues(format).Observe(seconds)
}

// ObserveSimilarity records a fidelity score.
func (m *ServerMetrics) ObserveSimilarity(score float64) {
	m.similarityScore.Observe(score)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
