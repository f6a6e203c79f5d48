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
			Namespace: "pitchpal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pitchpal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	// Analysis pipeline metrics
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pitchpal",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Analysis pipeline runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// Quota metrics
	quotaDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pitchpal",
			Subsystem: "quota",
			Name:      "denials_total",
			Help:      "Session creation attempts denied by the daily quota",
		},
		[]string{"tier"},
	)

	sessionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pitchpal",
			Subsystem: "session",
			Name:      "created_total",
			Help:      "Sessions created",
		},
		[]string{"tier"},
	)

	retentionDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pitchpal",
			Subsystem: "retention",
			Name:      "sessions_deleted_total",
			Help:      "Sessions removed by the retention sweep",
		},
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

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
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

// RecordAnalysis records an analysis pipeline run
func RecordAnalysis(mode, outcome string) {
	analysesTotal.WithLabelValues(mode, outcome).Inc()
}

// RecordQuotaDenial records a quota-denied session creation attempt
func RecordQuotaDenial(tier string) {
	quotaDenialsTotal.WithLabelValues(tier).Inc()
}

// RecordSessionCreated records a created session
func RecordSessionCreated(tier string) {
	sessionsCreatedTotal.WithLabelValues(tier).Inc()
}

// RecordRetentionDeleted records sessions removed by the retention sweep
func RecordRetentionDeleted(count int64) {
	retentionDeletedTotal.Add(float64(count))
}
