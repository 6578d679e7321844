package optimizer

import (
	"context"

	"github.com/spesa/search-service/internal/types"
)

// Optimizer selects the final answer for a shopping list, combining the
// single-store optimizer with the optional two-store strategy.
type Optimizer struct {
	single  *SingleStoreOptimizer
	pairs   *PairOptimizer
	config  *Config
	metrics *MetricsRecorder
}

// New creates an optimizer. A nil config uses Defaults.
func New(config *Config, metrics *MetricsRecorder) *Optimizer {
	if config == nil {
		config = Defaults()
	}
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &Optimizer{
		single:  NewSingleStoreOptimizer(metrics),
		pairs:   NewPairOptimizer(metrics),
		config:  config,
		metrics: metrics,
	}
}

// Config returns the optimizer configuration.
func (o *Optimizer) Config() *Config {
	return o.config
}

// Optimize returns the best result for required, or nil when nothing was
// asked for or no store stocks any requested item.
//
// In savings mode a full-coverage pair replaces the single-store answer when
// the single store is only a partial match, or when the pair is strictly
// cheaper than a full-coverage single store.
func (o *Optimizer) Optimize(ctx context.Context, baskets map[string]*StoreBasket, required KeySet, mode types.Mode) *CoverageResult {
	o.metrics.RecordBasketSize(len(required))

	result := o.single.Optimize(baskets, required)
	if mode == types.ModeSavings && o.config.EnablePairs {
		result = preferPair(result, o.pairs.Optimize(ctx, baskets, required))
	}

	o.metrics.RecordOutcome(result)
	return result
}

func preferPair(single, pair *CoverageResult) *CoverageResult {
	switch {
	case pair == nil:
		return single
	case single == nil, !single.FullCoverage():
		return pair
	case pair.TotalPrice < single.TotalPrice:
		return pair
	default:
		return single
	}
}
