package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queryDuration tracks backend round-trip time per query kind.
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_backend_query_duration_seconds",
		Help:    "Time taken by search backend queries",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"query"}) // query: candidates, most_similar, lowest_price, nearby, in_shop

	// queryTotal counts backend queries by kind and status.
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "search_backend_queries_total",
		Help: "Total search backend queries",
	}, []string{"query", "status"}) // status: ok, error

	// hitsReturned tracks hits kept per query after filtering.
	hitsReturned = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_backend_hits_count",
		Help:    "Hits returned per search backend query",
		Buckets: []float64{0, 1, 2, 5, 10, 20},
	}, []string{"query"})

	// breakerState mirrors the circuit breaker (0 closed, 1 open, 2 half-open).
	breakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "search_backend_breaker_state",
		Help: "Search backend circuit breaker state (0=closed, 1=open, 2=half-open)",
	})
)

// Query kinds used as metric labels.
const (
	QueryCandidates  = "candidates"
	QueryMostSimilar = "most_similar"
	QueryLowestPrice = "lowest_price"
	QueryNearby      = "nearby"
	QueryInShop      = "in_shop"
)

func recordQuery(query, status string, duration time.Duration, hits int) {
	queryTotal.WithLabelValues(query, status).Inc()
	queryDuration.WithLabelValues(query).Observe(duration.Seconds())
	if status == "ok" {
		hitsReturned.WithLabelValues(query).Observe(float64(hits))
	}
}
