package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JosephKS10/blog-backend/internal/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

var (
	metricsOnce    sync.Once
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
)

// initMetrics registers the collectors once per process. A collector that
// is already registered is reused.
func initMetrics() {
	metricsOnce.Do(func() {
		requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"})

		requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blog",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"})

		if err := prometheus.Register(requestTotal); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				requestTotal = are.ExistingCollector.(*prometheus.CounterVec)
			}
		}
		if err := prometheus.Register(requestLatency); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				requestLatency = are.ExistingCollector.(*prometheus.HistogramVec)
			}
		}
	})
}

// instrument records metrics and writes one log line per request. The route
// label is the matched chi pattern so ids don't explode cardinality.
func instrument(log *logger.Logger) func(http.Handler) http.Handler {
	initMetrics()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			labels := prometheus.Labels{
				"method": r.Method,
				"route":  route,
				"status": strconv.Itoa(status),
			}
			requestTotal.With(labels).Inc()
			requestLatency.With(labels).Observe(duration.Seconds())

			log.With("request_id", chimw.GetReqID(r.Context())).
				Info("%s %s %d %s", r.Method, r.URL.Path, status, duration.Round(time.Microsecond))
		})
	}
}
