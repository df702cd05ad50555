package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Search metrics
	FitnessEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "featweight_fitness_evaluations_total",
		Help: "Total number of fitness evaluations performed",
	})

	ImprovementsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "featweight_improvements_accepted_total",
		Help: "Total number of improving moves accepted by the search",
	})

	BestFitness = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "featweight_best_fitness",
		Help: "Best fitness value found by the most recent search",
	})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "featweight_search_duration_seconds",
		Help:    "Wall-clock duration of complete search runs",
		Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	SearchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "featweight_search_runs_total",
		Help: "Total number of search runs by outcome",
	}, []string{"status"})

	// Run store metrics
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "featweight_store_operations_total",
		Help: "Total number of run store operations",
	}, []string{"operation", "status"})
)
