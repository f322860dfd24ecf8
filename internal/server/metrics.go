package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	lookupResultMatched   = "matched"
	lookupResultNoMatch   = "no_match"
	lookupResultRejected  = "rejected"
	lookupResultNoSession = "unknown_session"
)

// Metrics holds the server's Prometheus collectors on a private registry
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	lookups         *prometheus.CounterVec
	lookupMatches   prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "examtt_lookups_total",
		Help: "Timetable lookups by outcome",
	}, []string{"result"})

	lookupMatches := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "examtt_lookup_matches",
		Help:    "Number of exams matched per lookup",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
	})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "examtt_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	registry.MustRegister(lookups, lookupMatches, requestDuration)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		lookups:         lookups,
		lookupMatches:   lookupMatches,
		requestDuration: requestDuration,
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// ObserveLookup records one lookup outcome
func (m *Metrics) ObserveLookup(result string, matches int) {
	m.lookups.WithLabelValues(result).Inc()
	if result == lookupResultMatched || result == lookupResultNoMatch {
		m.lookupMatches.Observe(float64(matches))
	}
}

// Middleware times every request by route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
