package search

import "fmt"

// Config controls query construction and fan-out.
type Config struct {
	// Index is the products index name.
	Index string `mapstructure:"index"`

	// ExactBoost is the constant score of the exact canonical name clause.
	// It is not scaled by BM25, so it must stay above the scores the fuzzy
	// text clauses reach for an exact match to always rank first.
	ExactBoost float64 `mapstructure:"exact_boost"`

	// Radii of the geo filters in kilometers.
	OptimizeRadiusKm    float64 `mapstructure:"optimize_radius_km"`
	LowestPriceRadiusKm float64 `mapstructure:"lowest_price_radius_km"`
	NearbyRadiusKm      float64 `mapstructure:"nearby_radius_km"`

	// HitsPerItem is the number of hits requested per item query.
	HitsPerItem int `mapstructure:"hits_per_item"`

	// FetchConcurrency bounds in-flight item queries per request.
	FetchConcurrency int `mapstructure:"fetch_concurrency"`

	Breaker BreakerConfig `mapstructure:",squash"`
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() Config {
	return Config{
		Index:               "products",
		ExactBoost:          100,
		OptimizeRadiusKm:    100,
		LowestPriceRadiusKm: 200,
		NearbyRadiusKm:      200,
		HitsPerItem:         10,
		FetchConcurrency:    8,
		Breaker:             DefaultBreakerConfig(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Index == "" {
		return fmt.Errorf("search.index is required")
	}
	if c.OptimizeRadiusKm <= 0 || c.LowestPriceRadiusKm <= 0 || c.NearbyRadiusKm <= 0 {
		return fmt.Errorf("search radii must be positive")
	}
	if c.HitsPerItem < 1 {
		return fmt.Errorf("search.hits_per_item must be at least 1")
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("search.fetch_concurrency must be at least 1")
	}
	if c.Breaker.MaxFailures < 0 {
		return fmt.Errorf("search.breaker_max_failures must not be negative")
	}
	return nil
}
