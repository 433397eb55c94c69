package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitcoach",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fitcoach",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Access control metrics
	accessDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "access",
			Name:      "decisions_total",
			Help:      "Total number of subscription access decisions",
		},
		[]string{"feature", "result"},
	)

	authFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Total number of rejected authentication attempts",
		},
		[]string{"reason"},
	)

	// Job queue metrics
	jobsEnqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "jobs",
			Name:      "enqueued_total",
			Help:      "Total number of enqueue requests",
		},
		[]string{"job_type", "deduplicated"},
	)

	jobExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "jobs",
			Name:      "executions_total",
			Help:      "Total number of job executions",
		},
		[]string{"job_type", "status"},
	)

	jobExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitcoach",
			Subsystem: "jobs",
			Name:      "execution_duration_seconds",
			Help:      "Duration of job executions in seconds",
			Buckets:   []float64{.05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"job_type"},
	)

	// Payment provider metrics
	checkoutVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "billing",
			Name:      "checkout_verifications_total",
			Help:      "Total number of checkout session verifications",
		},
		[]string{"result"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitcoach",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAccessDecision records the outcome of a subscription access check
func RecordAccessDecision(feature string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	accessDecisionsTotal.WithLabelValues(feature, result).Inc()
}

// RecordAuthFailure records a rejected authentication attempt
func RecordAuthFailure(reason string) {
	authFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordJobEnqueued records an enqueue request
func RecordJobEnqueued(jobType string, deduplicated bool) {
	jobsEnqueuedTotal.WithLabelValues(jobType, strconv.FormatBool(deduplicated)).Inc()
}

// RecordJobExecution records a finished job execution
func RecordJobExecution(jobType, status string, duration time.Duration) {
	jobExecutionsTotal.WithLabelValues(jobType, status).Inc()
	jobExecutionDuration.WithLabelValues(jobType).Observe(duration.Seconds())
}

// RecordCheckoutVerification records a checkout session lookup
func RecordCheckoutVerification(result string) {
	checkoutVerificationsTotal.WithLabelValues(result).Inc()
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
