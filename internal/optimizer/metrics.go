package optimizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// optimizationDuration tracks the time taken by each strategy.
	optimizationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optimizer_calculation_duration_seconds",
		Help:    "Time taken for optimization calculation by strategy",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"strategy"}) // strategy: single, pair

	// basketSize tracks the distribution of shopping list sizes.
	basketSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_requested_items_count",
		Help:    "Number of distinct requested items per optimization",
		Buckets: []float64{1, 2, 5, 10, 20, 50},
	})

	// storeCount tracks the number of store baskets considered.
	storeCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_stores_considered_count",
		Help:    "Number of store baskets considered in optimization",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 500},
	})

	// candidateCount tracks the number of candidates evaluated per strategy.
	candidateCount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optimizer_candidates_count",
		Help:    "Number of candidates evaluated by strategy",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
	}, []string{"strategy"})

	// outcomes counts results by coverage outcome.
	outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "optimizer_results_total",
		Help: "Optimization results by outcome",
	}, []string{"outcome"}) // outcome: full, partial, pair, none

	// coverageRatio tracks the coverage ratio of optimization results.
	coverageRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_result_coverage_ratio",
		Help:    "Coverage ratio of optimization results",
		Buckets: []float64{0.25, 0.5, 0.7, 0.8, 0.9, 1.0},
	})
)

// MetricsRecorder provides methods to record optimizer metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordOptimizationDuration records the duration of an optimization operation.
func (m *MetricsRecorder) RecordOptimizationDuration(strategy string, duration time.Duration) {
	optimizationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordBasketSize records the number of requested keys.
func (m *MetricsRecorder) RecordBasketSize(size int) {
	basketSize.Observe(float64(size))
}

// RecordStoreCount records the number of stores considered.
func (m *MetricsRecorder) RecordStoreCount(count int) {
	storeCount.Observe(float64(count))
}

// RecordCandidateCount records the number of candidates for a strategy.
func (m *MetricsRecorder) RecordCandidateCount(strategy string, count int) {
	candidateCount.WithLabelValues(strategy).Observe(float64(count))
}

// RecordOutcome records the coverage outcome of a result. nil means no result.
func (m *MetricsRecorder) RecordOutcome(result *CoverageResult) {
	switch {
	case result == nil:
		outcomes.WithLabelValues("none").Inc()
		return
	case result.Strategy == StrategyPair:
		outcomes.WithLabelValues("pair").Inc()
	case result.FullCoverage():
		outcomes.WithLabelValues("full").Inc()
	default:
		outcomes.WithLabelValues("partial").Inc()
	}
	coverageRatio.Observe(result.CoverageRatio())
}
