// Package monitor registers the process's prometheus collectors.
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration observes handler latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sitegrid",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// DependencyRejects counts refused dependency inserts by reason.
	DependencyRejects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitegrid",
			Name:      "dependency_rejects_total",
			Help:      "Dependency edge inserts refused by validation, by reason.",
		},
		[]string{"reason"},
	)

	// SweeperOrphansRemoved counts dependency edges repaired by the
	// consistency sweeper.
	SweeperOrphansRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sitegrid",
			Name:      "sweeper_orphan_edges_removed_total",
			Help:      "Orphaned dependency edges deleted by the sweeper.",
		},
	)

	// WebhookDeliveries counts outbound webhook attempts by outcome.
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitegrid",
			Name:      "webhook_deliveries_total",
			Help:      "Outbound webhook deliveries by outcome.",
		},
		[]string{"outcome"},
	)
)
