package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache result labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	// Cache-aside efficiency per entity type.
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache lookups by entity and result",
		},
		[]string{"entity", "result"},
	)

	// Document store metrics
	StoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_store_request_duration_seconds",
			Help:    "Duration of document store requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation", "index"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_store_errors_total",
			Help: "Total number of failed document store requests",
		},
		[]string{"operation", "index"},
	)

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 0 = closed, 1 = half-open, 2 = open
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "search_store_breaker_state",
			Help: "Circuit breaker state of the document store client",
		},
		[]string{"name"},
	)
)

// RecordCacheLookup counts one cache lookup.
func RecordCacheLookup(entity, result string) {
	CacheRequests.WithLabelValues(entity, result).Inc()
}

// RecordStoreRequest records latency and, on failure, the error counter.
func RecordStoreRequest(operation, index string, duration time.Duration, err error) {
	StoreRequestDuration.WithLabelValues(operation, index).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation, index).Inc()
	}
}

// RecordHTTPRequest records one served request. route is the matched
// pattern, not the raw path.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
