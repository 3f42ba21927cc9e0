package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "teamchat",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teamchat",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "teamchat",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	failOpen = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teamchat",
			Subsystem: "core",
			Name:      "fail_open_total",
			Help:      "Read operations that returned an empty result after a storage failure.",
		},
		[]string{"operation"},
	)

	reactionDuplicates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "teamchat",
			Subsystem: "core",
			Name:      "reaction_duplicates_total",
			Help:      "Reaction inserts that hit the uniqueness constraint and returned the existing row.",
		},
	)

	invalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teamchat",
			Subsystem: "view",
			Name:      "invalidations_total",
			Help:      "View invalidation batches by outcome.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		failOpen,
		reactionDuplicates,
		invalidations,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObserveFailOpen counts a read path that swallowed a storage error.
func ObserveFailOpen(operation string) {
	failOpen.WithLabelValues(operation).Inc()
}

// ObserveReactionDuplicate counts an idempotent reaction add that found an existing row.
func ObserveReactionDuplicate() {
	reactionDuplicates.Inc()
}

func ObserveInvalidation(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	invalidations.WithLabelValues(result).Inc()
}
