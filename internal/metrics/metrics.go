// Package metrics holds the Prometheus collectors shared by the upstream
// client and the catalog loader.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts each MealDB call once, by endpoint and outcome
	// (success, not_found, decode_error, status_error, transport_error, rejected).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealdb_upstream_requests_total",
			Help: "Requests made to the MealDB API",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealdb_upstream_request_duration_seconds",
			Help:    "Latency of MealDB API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// BreakerState is 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mealdb_circuit_breaker_state",
			Help: "Circuit breaker state for the MealDB API",
		},
		[]string{"name"},
	)

	FailedLetters = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mealdb_failed_letters_total",
			Help: "First-letter searches that contributed no meals because they failed",
		},
	)

	CorpusMeals = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mealdb_corpus_meals",
			Help: "Meals in the most recently loaded corpus",
		},
	)
)
