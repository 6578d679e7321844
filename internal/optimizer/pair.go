package optimizer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PairOptimizer searches every unordered pair of stores for the cheapest
// split that covers the whole list. It is O(stores²) and only ever returns
// full-coverage results.
type PairOptimizer struct {
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewPairOptimizer creates a new two-store optimizer.
func NewPairOptimizer(metrics *MetricsRecorder) *PairOptimizer {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &PairOptimizer{
		metrics: metrics,
		logger:  log.With().Str("component", "pair_optimizer").Logger(),
	}
}

// Optimize returns the cheapest pair of stores that together satisfy every
// required key, with both stores contributing at least one product.
// Returns nil when no pair covers the list or ctx is done.
func (o *PairOptimizer) Optimize(ctx context.Context, baskets map[string]*StoreBasket, required KeySet) *CoverageResult {
	startTime := time.Now()
	defer func() {
		o.metrics.RecordOptimizationDuration(StrategyPair, time.Since(startTime))
	}()

	if len(required) == 0 || len(baskets) < 2 {
		return nil
	}

	keys := required.Sorted()
	ids := sortedStoreIDs(baskets)
	o.metrics.RecordCandidateCount(StrategyPair, len(ids)*(len(ids)-1)/2)

	var best *CoverageResult
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ctx.Err() != nil {
				return nil
			}

			result := evaluatePair(baskets[ids[i]], baskets[ids[j]], keys)
			if result == nil {
				continue
			}
			if best == nil || result.TotalPrice < best.TotalPrice {
				best = result
			}
		}
	}

	if best != nil {
		o.logger.Debug().
			Str("stores", best.Store).
			Float64("total_price", best.TotalPrice).
			Msg("Selected store pair")
	}
	return best
}

// evaluatePair assigns each key to the cheaper of the two stores (a on ties).
// Returns nil if some key is stocked by neither store or if one store would
// contribute nothing.
func evaluatePair(a, b *StoreBasket, keys []string) *CoverageResult {
	result := &CoverageResult{
		Store:    PairLabel(a.StoreID, b.StoreID),
		Stores:   []string{a.StoreID, b.StoreID},
		Strategy: StrategyPair,
	}

	fromA, fromB := 0, 0
	for _, key := range keys {
		ma, okA := a.Lookup(key)
		mb, okB := b.Lookup(key)

		switch {
		case okA && (!okB || ma.Price <= mb.Price):
			result.Products = append(result.Products, ma)
			result.TotalPrice += ma.Price
			fromA++
		case okB:
			result.Products = append(result.Products, mb)
			result.TotalPrice += mb.Price
			fromB++
		default:
			return nil
		}
	}

	if fromA == 0 || fromB == 0 {
		return nil
	}

	result.Found = len(keys)
	return result
}
