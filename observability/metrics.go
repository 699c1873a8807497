// Package observability carries the Prometheus metrics and OpenTelemetry
// tracing shared across the API. The scrape endpoint itself is mounted by the
// server package via fiberprometheus.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryLatency records store call latency by operation and entity kind.
	QueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foliocms_store_query_latency_seconds",
		Help:    "Store call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "kind"})

	// GateRejections counts requests refused by the access gate.
	GateRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foliocms_gate_rejections_total",
		Help: "Total number of requests refused by the access gate",
	})

	// RedisErrors counts Redis failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foliocms_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// TrackQuery returns a function that records the latency of one store call
// when invoked, usually via defer.
func TrackQuery(operation, kind string) func() {
	start := time.Now()
	return func() {
		QueryLatency.WithLabelValues(operation, kind).Observe(time.Since(start).Seconds())
	}
}
