package optimizer

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SingleStoreOptimizer implements coverage-first selection of one store.
type SingleStoreOptimizer struct {
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewSingleStoreOptimizer creates a new single-store optimizer.
func NewSingleStoreOptimizer(metrics *MetricsRecorder) *SingleStoreOptimizer {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &SingleStoreOptimizer{
		metrics: metrics,
		logger:  log.With().Str("component", "single_store_optimizer").Logger(),
	}
}

// Optimize picks the best single store for the required keys.
//
// Stores whose basket covers every key compete on total price. When no store
// covers everything, the store satisfying the most keys wins, ties broken by
// total price. Returns nil if required is empty or no store stocks any key.
func (o *SingleStoreOptimizer) Optimize(baskets map[string]*StoreBasket, required KeySet) *CoverageResult {
	startTime := time.Now()
	defer func() {
		o.metrics.RecordOptimizationDuration(StrategySingle, time.Since(startTime))
	}()

	if len(required) == 0 {
		return nil
	}

	o.metrics.RecordStoreCount(len(baskets))

	keys := required.Sorted()
	var bestFull, bestPartial *CoverageResult
	for _, storeID := range sortedStoreIDs(baskets) {
		result := evaluateStore(baskets[storeID], keys)
		if result.Found == 0 {
			continue
		}

		if result.FullCoverage() {
			if bestFull == nil || result.TotalPrice < bestFull.TotalPrice {
				bestFull = result
			}
			continue
		}

		if bestPartial == nil || betterPartial(result, bestPartial) {
			bestPartial = result
		}
	}

	if bestFull != nil {
		o.logger.Debug().
			Str("store", bestFull.Store).
			Float64("total_price", bestFull.TotalPrice).
			Msg("Selected full-coverage store")
		return bestFull
	}

	if bestPartial != nil {
		o.logger.Debug().
			Str("store", bestPartial.Store).
			Int("found", bestPartial.Found).
			Strs("missing", bestPartial.Missing).
			Msg("No store covers the full list, selected best partial store")
	}
	return bestPartial
}

// evaluateStore builds the coverage result of one basket against the sorted required keys.
func evaluateStore(basket *StoreBasket, keys []string) *CoverageResult {
	result := &CoverageResult{
		Store:    basket.StoreID,
		Stores:   []string{basket.StoreID},
		Strategy: StrategySingle,
	}

	for _, key := range keys {
		m, ok := basket.Lookup(key)
		if !ok {
			result.Missing = append(result.Missing, key)
			continue
		}
		result.Found++
		result.TotalPrice += m.Price
		result.Products = append(result.Products, m)
	}

	return result
}

// betterPartial ranks partial results: more keys found first, then cheaper.
func betterPartial(a, b *CoverageResult) bool {
	if a.Found != b.Found {
		return a.Found > b.Found
	}
	return a.TotalPrice < b.TotalPrice
}
