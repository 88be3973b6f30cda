// Package metrics holds the Prometheus collectors of the generator and the
// sampler. Collectors register with the default registry on package init and
// are exposed by the HTTP adapter at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationDuration tracks full pool generation runs.
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "any4_generation_duration_seconds",
		Help:    "Pool generation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
	})

	// TreesBuilt counts possibility trees built, one per input multiset.
	TreesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "any4_trees_built_total",
		Help: "Possibility trees built",
	})

	// TreeNodes counts nodes allocated across all trees.
	TreeNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "any4_tree_nodes_total",
		Help: "Nodes allocated across all possibility trees",
	})

	// Rankings counts (multiset, target) classifications by difficulty.
	Rankings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "any4_rankings_total",
		Help: "Input rankings produced by difficulty",
	}, []string{"difficulty"})

	// BoardsSampled counts boards handed out by the tier they were drawn from.
	BoardsSampled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "any4_boards_sampled_total",
		Help: "Boards sampled by difficulty actually drawn",
	}, []string{"difficulty"})

	// SampleFailures counts board set requests that could not be satisfied.
	SampleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "any4_sample_failures_total",
		Help: "Board set requests that failed, by reason",
	}, []string{"reason"})
)
