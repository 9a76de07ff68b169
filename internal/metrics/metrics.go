// Package metrics exposes the Prometheus instrumentation for the dashboard
// backend. Collectors are registered on the default registry and served
// from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mutations counts committed create/update/delete operations per entity.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agencydesk_mutations_total",
		Help: "Committed collection mutations by entity and operation.",
	}, []string{"entity", "op"})

	// SyncAttempts counts cloud operations by kind and outcome.
	SyncAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agencydesk_sync_attempts_total",
		Help: "Cloud sync attempts by operation and outcome.",
	}, []string{"op", "outcome"})

	// SyncInFlight is 1 while a cloud operation is running.
	SyncInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agencydesk_sync_in_flight",
		Help: "Whether a cloud sync operation is currently in flight.",
	})

	// RequestDuration observes HTTP handler latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agencydesk_http_request_duration_seconds",
		Help:    "HTTP request duration by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
