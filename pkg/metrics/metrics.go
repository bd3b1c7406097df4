package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	scheduleRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Total number of itinerary scheduling runs",
		},
		[]string{"outcome"},
	)

	scheduleRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_run_duration_seconds",
			Help:    "Time spent building an itinerary",
			Buckets: prometheus.DefBuckets,
		},
	)

	matrixBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matrix_build_duration_seconds",
			Help:    "Time spent building a travel time matrix, ORS call included",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordScheduleRun tracks one engine run. Outcome is "success" or "failure".
func RecordScheduleRun(outcome string, elapsed time.Duration) {
	scheduleRunsTotal.WithLabelValues(outcome).Inc()
	scheduleRunDuration.Observe(elapsed.Seconds())
}

func RecordMatrixBuild(elapsed time.Duration) {
	matrixBuildDuration.Observe(elapsed.Seconds())
}

// PrometheusMiddleware records request counts and latencies per route.
// The metrics endpoint itself is skipped to keep the series clean.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "/metrics" || path == "/health" {
			c.Next()
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
