// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package metrics provides Prometheus instrumentation for the discovery
// engine. Metrics cover operation throughput and latency plus result-cache
// efficiency; the serving layer is expected to expose the default registry
// at its /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts discovery operations by name and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_operations_total",
			Help: "Total discovery engine operations",
		},
		[]string{"operation", "status"},
	)

	// OperationDuration tracks per-operation latency.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_operation_duration_seconds",
			Help:    "Discovery operation latency",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	// CacheHitsTotal counts result-cache hits by operation.
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_cache_hits_total",
			Help: "Discovery result cache hits",
		},
		[]string{"operation"},
	)

	// CacheMissesTotal counts result-cache misses by operation.
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_cache_misses_total",
			Help: "Discovery result cache misses",
		},
		[]string{"operation"},
	)
)

// RecordOperation records one completed operation with its outcome
// ("ok", "validation", "not_found", "computation") and latency.
func RecordOperation(operation, status string, duration time.Duration) {
	OperationsTotal.WithLabelValues(operation, status).Inc()
	OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheHit records a result-cache hit for an operation.
func RecordCacheHit(operation string) {
	CacheHitsTotal.WithLabelValues(operation).Inc()
}

// RecordCacheMiss records a result-cache miss for an operation.
func RecordCacheMiss(operation string) {
	CacheMissesTotal.WithLabelValues(operation).Inc()
}
