package search

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/spesa/search-service/internal/matching"
	"github.com/spesa/search-service/internal/types"
)

// Searcher issues product queries against a Backend.
type Searcher struct {
	backend Backend
	config  Config
	logger  zerolog.Logger
}

// NewSearcher creates a searcher over backend.
func NewSearcher(backend Backend, config Config) *Searcher {
	if config.FetchConcurrency < 1 {
		config.FetchConcurrency = 1
	}
	return &Searcher{
		backend: backend,
		config:  config,
		logger:  log.With().Str("component", "searcher").Logger(),
	}
}

// Config returns the search configuration.
func (s *Searcher) Config() Config {
	return s.config
}

// FetchCandidates runs one query per item, concurrently, and returns the hits
// per item. A hit is kept only when its normalized name contains the
// normalized item. Any failed item query fails the whole fetch; remaining
// queries are cancelled.
func (s *Searcher) FetchCandidates(ctx context.Context, items []string, pos types.Position) (map[string][]types.ProductMatch, error) {
	ctx, span := otel.Tracer("search").Start(ctx, "search.fetch_candidates")
	defer span.End()
	span.SetAttributes(attribute.Int("items", len(items)))

	results := make([][]types.ProductMatch, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.FetchConcurrency)
	for i, item := range items {
		g.Go(func() error {
			hits, err := s.run(gctx, QueryCandidates, s.config.BuildProductQuery(item, pos))
			if err != nil {
				return fmt.Errorf("fetch %q: %w", item, err)
			}

			kept := make([]types.ProductMatch, 0, len(hits))
			for _, hit := range hits {
				if matching.ContainsName(hit.Name, item) {
					kept = append(kept, hit)
				}
			}
			results[i] = kept
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make(map[string][]types.ProductMatch, len(items))
	total := 0
	for i, item := range items {
		candidates[item] = results[i]
		total += len(results[i])
	}
	s.logger.Debug().Int("items", len(items)).Int("hits", total).Msg("Fetched candidates")
	return candidates, nil
}

// MostSimilar returns products ranked by text similarity to text.
func (s *Searcher) MostSimilar(ctx context.Context, text string) ([]types.ProductMatch, error) {
	return s.run(ctx, QueryMostSimilar, s.config.BuildMostSimilarQuery(text))
}

// LowestPrice returns products similar to text near pos, cheapest first,
// excluding the given IDs.
func (s *Searcher) LowestPrice(ctx context.Context, text string, pos types.Position, excludeIDs []string) ([]types.ProductMatch, error) {
	return s.run(ctx, QueryLowestPrice, s.config.BuildLowestPriceQuery(text, pos, excludeIDs))
}

// Nearby returns the best match for product near pos, if any.
func (s *Searcher) Nearby(ctx context.Context, product string, pos types.Position) (*types.ProductMatch, error) {
	return first(s.run(ctx, QueryNearby, s.config.BuildNearbyQuery(product, pos)))
}

// InShop returns product as sold by shop near pos, if any.
func (s *Searcher) InShop(ctx context.Context, product, shop string, pos types.Position) (*types.ProductMatch, error) {
	return first(s.run(ctx, QueryInShop, s.config.BuildInShopQuery(product, shop, pos)))
}

func (s *Searcher) run(ctx context.Context, kind string, body Query) ([]types.ProductMatch, error) {
	start := time.Now()
	hits, err := s.backend.Search(ctx, body)
	if err != nil {
		recordQuery(kind, "error", time.Since(start), 0)
		return nil, err
	}
	recordQuery(kind, "ok", time.Since(start), len(hits))
	return hits, nil
}

func first(hits []types.ProductMatch, err error) (*types.ProductMatch, error) {
	if err != nil || len(hits) == 0 {
		return nil, err
	}
	return &hits[0], nil
}
