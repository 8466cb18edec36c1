// Package metrics exposes Prometheus collectors for the crawl service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesTotal     *prometheus.CounterVec
	decisionsTotal   *prometheus.CounterVec
	traversalsTotal  prometheus.Counter
	discoveredTotal  *prometheus.CounterVec
	propagationDrops *prometheus.CounterVec
	policyFaults     prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawlkit_fetches_total",
				Help: "Total fetch attempts, labeled by content source.",
			},
			[]string{"source"},
		)
		decisionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawlkit_process_decisions_total",
				Help: "Processing decisions, labeled by outcome.",
			},
			[]string{"decision"},
		)
		traversalsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crawlkit_traversals_total",
				Help: "Resources whose references were traversed.",
			},
		)
		discoveredTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawlkit_resources_discovered_total",
				Help: "Resources discovered and queued, labeled by kind.",
			},
			[]string{"kind"},
		)
		propagationDrops = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawlkit_propagation_drops_total",
				Help: "Discovered resources dropped by propagation rules, labeled by kind.",
			},
			[]string{"kind"},
		)
		policyFaults = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crawlkit_policy_faults_total",
				Help: "Resources failed due to malformed policy configuration.",
			},
		)
	})
}

// ObserveFetch records a fetch attempt against the given source.
func ObserveFetch(source string) {
	if fetchesTotal == nil {
		return
	}
	fetchesTotal.WithLabelValues(source).Inc()
}

// ObserveDecision records a processing decision ("process" or "skip").
func ObserveDecision(decision string) {
	if decisionsTotal == nil {
		return
	}
	decisionsTotal.WithLabelValues(decision).Inc()
}

// ObserveTraversal records that a resource's references were traversed.
func ObserveTraversal() {
	if traversalsTotal == nil {
		return
	}
	traversalsTotal.Inc()
}

// ObserveDiscovered records a discovered resource queued for traversal.
func ObserveDiscovered(kind string) {
	if discoveredTotal == nil {
		return
	}
	discoveredTotal.WithLabelValues(kind).Inc()
}

// ObservePropagationDrop records a discovered resource the propagation rules
// declined to queue.
func ObservePropagationDrop(kind string) {
	if propagationDrops == nil {
		return
	}
	propagationDrops.WithLabelValues(kind).Inc()
}

// ObservePolicyFault records a resource failed on policy configuration.
func ObservePolicyFault() {
	if policyFaults == nil {
		return
	}
	policyFaults.Inc()
}
