// Package metrics provides the Prometheus metrics registry scraped at
// /metrics, covering this engine's concerns: HTTP traffic,
// feasibility-check outcomes, and the optimizer job queue.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric the engine exports and the helper methods
// that record them.
type Registry struct {
	registry prometheus.Registerer

	httpRequestsTotal      prometheus.CounterVec
	httpErrorsTotal        prometheus.CounterVec
	feasibilityChecksTotal prometheus.CounterVec
	optimizerRunsTotal     prometheus.CounterVec

	httpRequestDuration       prometheus.HistogramVec
	feasibilityCheckDuration  prometheus.Histogram
	optimizerRoundTripSeconds prometheus.HistogramVec

	queueDepth          prometheus.GaugeVec
	activeOptimizerRuns prometheus.Gauge

	mu sync.RWMutex
}

// New creates and registers every metric against the global default
// registry. It panics if a metric fails to register, a deliberate
// fail-fast for startup-time setup.
func New() *Registry {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry is New but against a caller-supplied registry, used by
// tests to avoid colliding with the global one.
func NewWithRegistry(registerer prometheus.Registerer) *Registry {
	m := &Registry{registry: registerer}

	m.httpRequestsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests by method and path"},
		[]string{"method", "path"},
	)
	m.registry.MustRegister(&m.httpRequestsTotal)

	m.httpErrorsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_errors_total", Help: "Total HTTP errors by error type"},
		[]string{"error_type"},
	)
	m.registry.MustRegister(&m.httpErrorsTotal)

	m.feasibilityChecksTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "feasibility_checks_total", Help: "Total feasibility evaluations by outcome"},
		[]string{"outcome"}, // "possible" | "impossible"
	)
	m.registry.MustRegister(&m.feasibilityChecksTotal)

	m.optimizerRunsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimizer_runs_total", Help: "Total external-optimizer round trips by kind and outcome"},
		[]string{"kind", "outcome"}, // kind: generate|check_feasibility; outcome: complete|failed
	)
	m.registry.MustRegister(&m.optimizerRunsTotal)

	m.httpRequestDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency in seconds", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
	m.registry.MustRegister(&m.httpRequestDuration)

	m.feasibilityCheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "feasibility_check_duration_seconds", Help: "External optimizer /check-feasibility pre-check latency in seconds"},
	)
	m.registry.MustRegister(m.feasibilityCheckDuration)

	m.optimizerRoundTripSeconds = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optimizer_round_trip_seconds",
			Help:    "External optimizer call latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 15, 20, 30, 60},
		},
		[]string{"kind"},
	)
	m.registry.MustRegister(&m.optimizerRoundTripSeconds)

	m.queueDepth = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "queue_depth", Help: "Pending asynq task count"},
		[]string{"queue_name"},
	)
	m.registry.MustRegister(&m.queueDepth)

	m.activeOptimizerRuns = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "active_optimizer_runs", Help: "Optimizer round trips currently in RUNNING state"},
	)
	m.registry.MustRegister(m.activeOptimizerRuns)

	return m
}

// RecordHTTPRequest records one completed HTTP request's count and latency.
func (m *Registry) RecordHTTPRequest(method, path string, statusCode int, duration float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.httpRequestsTotal.WithLabelValues(method, path).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, statusCodeLabel(statusCode)).Observe(duration)
}

// RecordHTTPError increments the error counter for errorType.
func (m *Registry) RecordHTTPError(errorType string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.httpErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordFeasibilityCheck records one feasibility evaluation's outcome and
// duration.
func (m *Registry) RecordFeasibilityCheck(feasible bool, duration float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	outcome := "impossible"
	if feasible {
		outcome = "possible"
	}
	m.feasibilityChecksTotal.WithLabelValues(outcome).Inc()
	m.feasibilityCheckDuration.Observe(duration)
}

// RecordOptimizerRun records one completed /generate or /check-feasibility
// round trip.
func (m *Registry) RecordOptimizerRun(kind string, succeeded bool, duration float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	outcome := "failed"
	if succeeded {
		outcome = "complete"
	}
	m.optimizerRunsTotal.WithLabelValues(kind, outcome).Inc()
	m.optimizerRoundTripSeconds.WithLabelValues(kind).Observe(duration)
	if !succeeded {
		m.RecordHTTPError("optimizer_" + outcome)
	}
}

// SetQueueDepth sets the pending-task gauge for queueName.
func (m *Registry) SetQueueDepth(queueName string, depth int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.queueDepth.WithLabelValues(queueName).Set(float64(depth))
}

// IncrementActiveOptimizerRuns increments the in-flight round-trip gauge.
func (m *Registry) IncrementActiveOptimizerRuns() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.activeOptimizerRuns.Inc()
}

// DecrementActiveOptimizerRuns decrements the in-flight round-trip gauge.
func (m *Registry) DecrementActiveOptimizerRuns() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.activeOptimizerRuns.Dec()
}

// Handler returns an http.Handler serving this registry in Prometheus
// exposition format, mounted at GET /metrics.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry.(prometheus.Gatherer), promhttp.HandlerOpts{})
}

func statusCodeLabel(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// HTTPMiddleware wraps next, recording request count and latency metrics
// for every call.
func (m *Registry) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &statusCapturingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(seconds float64) {
			m.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, seconds)
		}))
		next.ServeHTTP(wrapped, r)
		timer.ObserveDuration()
	})
}

type statusCapturingWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (w *statusCapturingWriter) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusCapturingWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}
