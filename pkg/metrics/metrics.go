// Package metrics defines Prometheus metrics for the RDW proxy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts RDW upstream requests by dataset and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdw_upstream_requests_total",
		Help: "Total RDW upstream requests by dataset and status",
	}, []string{"dataset", "status"})

	// UpstreamDuration observes RDW upstream request latency by dataset.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rdw_upstream_request_duration_seconds",
		Help:    "RDW upstream request duration in seconds by dataset",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"dataset"})

	// CacheHits counts read-through cache hits by dataset.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdw_cache_hits_total",
		Help: "Total cache hits by dataset",
	}, []string{"dataset"})

	// CacheMisses counts read-through cache misses by dataset.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rdw_cache_misses_total",
		Help: "Total cache misses by dataset",
	}, []string{"dataset"})
)
