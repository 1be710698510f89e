package observability

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
			Name: "outreach_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outreach_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// PagesAnalyzed counts completed intake runs by decision.
	PagesAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_pages_analyzed_total",
			Help: "Number of page analyses recorded",
		},
		[]string{"decision"},
	)

	// DraftTransitions counts draft status changes by target status.
	DraftTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_drafts_transitions_total",
			Help: "Number of draft status transitions",
		},
		[]string{"to"},
	)

	// MessagesSent counts messages recorded as sent.
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_messages_sent_total",
			Help: "Number of outreach messages recorded as sent",
		},
		[]string{"platform"},
	)

	// RepliesIngested counts replies stored by the reply worker.
	RepliesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_replies_ingested_total",
			Help: "Number of replies ingested",
		},
		[]string{"classification"},
	)

	// EventsProcessed counts worker deliveries by processor and outcome.
	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_worker_events_total",
			Help: "Number of events handled by worker processors",
		},
		[]string{"processor", "result"},
	)
)

// PrometheusMiddleware records request counts and latency keyed by route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes the default Prometheus registry.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
