// Package planner is the entry point of the shopping list engine: it
// validates requests, fetches candidates and runs the optimizer.
package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/spesa/search-service/internal/matching"
	"github.com/spesa/search-service/internal/optimizer"
	"github.com/spesa/search-service/internal/search"
	"github.com/spesa/search-service/internal/types"
)

// Planner answers shopping list and product queries.
type Planner struct {
	searcher  *search.Searcher
	optimizer *optimizer.Optimizer
	logger    zerolog.Logger
}

// New creates a planner.
func New(searcher *search.Searcher, opt *optimizer.Optimizer) *Planner {
	return &Planner{
		searcher:  searcher,
		optimizer: opt,
		logger:    log.With().Str("component", "planner").Logger(),
	}
}

// FindLowestPrice picks the store, or in savings mode the store pair, that
// best satisfies items around pos. An empty mode uses the configured default.
// Returns nil without error when no store stocks any requested item.
func (p *Planner) FindLowestPrice(ctx context.Context, items []string, pos types.Position, mode string) (*optimizer.CoverageResult, error) {
	ctx, span := otel.Tracer("planner").Start(ctx, "planner.find_lowest_price")
	defer span.End()

	m, err := types.ParseMode(mode, p.optimizer.Config().Mode())
	if err != nil {
		return nil, err
	}
	queries, required, err := p.validateItems(items)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("items", len(queries)), attribute.String("mode", string(m)))

	candidates, err := p.searcher.FetchCandidates(ctx, queries, pos)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	baskets := optimizer.Aggregate(candidates, pos)
	result := p.optimizer.Optimize(ctx, baskets, required, m)

	event := p.logger.Debug().
		Int("items", len(queries)).
		Int("stores", len(baskets)).
		Str("mode", string(m))
	if result != nil {
		event = event.Str("store", result.Store).Float64("total_price", result.TotalPrice).Int("missing", len(result.Missing))
	}
	event.Msg("Shopping list optimized")

	return result, nil
}

// validateItems rejects empty or oversized lists and items without any
// letter or digit. Items sharing a normalized key are queried once, using
// the first spelling seen.
func (p *Planner) validateItems(items []string) ([]string, optimizer.KeySet, error) {
	if len(items) == 0 {
		return nil, nil, types.ErrInvalidRequest{Field: "products", Reason: "must not be empty"}
	}

	required := make(optimizer.KeySet, len(items))
	queries := make([]string, 0, len(items))
	for i, item := range items {
		key := matching.NormalizeName(item)
		if key == "" {
			return nil, nil, types.ErrInvalidRequest{
				Field:  fmt.Sprintf("products[%d]", i),
				Reason: "must contain a letter or digit",
			}
		}
		if required.Has(key) {
			continue
		}
		required[key] = struct{}{}
		queries = append(queries, strings.TrimSpace(item))
	}

	if limit := p.optimizer.Config().MaxItems; len(queries) > limit {
		return nil, nil, types.ErrInvalidRequest{
			Field:  "products",
			Reason: fmt.Sprintf("at most %d distinct items allowed", limit),
		}
	}
	return queries, required, nil
}

// SearchSimilarAndCheapest returns the products most similar to query and,
// separately, the cheapest similar products near pos that are not already in
// the first list. A failed price search degrades to an empty list.
func (p *Planner) SearchSimilarAndCheapest(ctx context.Context, query string, pos types.Position) (*types.SearchResult, error) {
	ctx, span := otel.Tracer("planner").Start(ctx, "planner.search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, types.ErrInvalidRequest{Field: "query", Reason: "must not be empty"}
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}

	mostSimilar, err := p.searcher.MostSimilar(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch similar products: %w", err)
	}

	excludeIDs := make([]string, 0, len(mostSimilar))
	for _, m := range mostSimilar {
		excludeIDs = append(excludeIDs, m.ID)
	}

	lowestPrice, err := p.searcher.LowestPrice(ctx, query, pos, excludeIDs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Warn().Err(err).Str("query", query).Msg("Lowest price search failed, continuing without it")
		lowestPrice = nil
	}

	if len(lowestPrice) == 0 && len(mostSimilar) > 1 {
		i := cheapest(mostSimilar)
		lowestPrice = []types.ProductMatch{mostSimilar[i]}
		mostSimilar = append(mostSimilar[:i:i], mostSimilar[i+1:]...)
	}

	return &types.SearchResult{
		MostSimilar: optimizer.WithDistances(pos, mostSimilar),
		LowestPrice: optimizer.WithDistances(pos, lowestPrice),
	}, nil
}

// cheapest returns the index of the lowest priced match, the first on ties.
func cheapest(matches []types.ProductMatch) int {
	best := 0
	for i, m := range matches {
		if m.Price < matches[best].Price {
			best = i
		}
	}
	return best
}

// CheckProductExists reports whether product is sold near pos.
func (p *Planner) CheckProductExists(ctx context.Context, product string, pos types.Position) (*types.ExistsResult, error) {
	if strings.TrimSpace(product) == "" {
		return nil, types.ErrInvalidRequest{Field: "product", Reason: "must not be empty"}
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}

	match, err := p.searcher.Nearby(ctx, product, pos)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	result := &types.ExistsResult{Product: product}
	if match != nil {
		details := match.WithDistance(optimizer.DistanceFrom(pos, *match))
		result.Exists = true
		result.Details = &details
	}
	return result, nil
}

// FindProductInShop reports whether shop sells product near pos.
func (p *Planner) FindProductInShop(ctx context.Context, product, shop string, pos types.Position) (*types.InShopResult, error) {
	if strings.TrimSpace(product) == "" {
		return nil, types.ErrInvalidRequest{Field: "product", Reason: "must not be empty"}
	}
	if strings.TrimSpace(shop) == "" {
		return nil, types.ErrInvalidRequest{Field: "shop", Reason: "must not be empty"}
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}

	match, err := p.searcher.InShop(ctx, product, shop, pos)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product in shop: %w", err)
	}

	result := &types.InShopResult{Product: product, Shop: shop}
	if match != nil {
		details := match.WithDistance(optimizer.DistanceFrom(pos, *match))
		result.Exists = true
		result.Details = &details
	}
	return result, nil
}

// Plans converts an optimizer result into its response form. A nil result
// yields an empty list.
func Plans(result *optimizer.CoverageResult) []types.ShoppingPlan {
	if result == nil {
		return []types.ShoppingPlan{}
	}

	products := make([]types.ShopProduct, 0, len(result.Products))
	for _, m := range result.Products {
		var distance float64
		if m.Distance != nil {
			distance = *m.Distance
		}
		products = append(products, types.ShopProduct{
			Shop:        m.StoreID(),
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
			Discount:    m.Discount,
			Distance:    distance,
		})
	}

	missing := append([]string{}, result.Missing...)
	sort.Strings(missing)

	return []types.ShoppingPlan{{
		Shop:       result.Store,
		TotalPrice: result.TotalPrice,
		Products:   products,
		Missing:    missing,
	}}
}
