package planner

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spesa/search-service/internal/optimizer"
	"github.com/spesa/search-service/internal/search"
	"github.com/spesa/search-service/internal/types"
)

var torino = types.Position{Latitude: 45.0703, Longitude: 7.6869}

// fakeBackend routes queries by their shape: candidate, similar, cheapest,
// nearby or in-shop.
type fakeBackend struct {
	mu         sync.Mutex
	candidates map[string][]types.ProductMatch
	similar    []types.ProductMatch
	cheapest   []types.ProductMatch
	single     []types.ProductMatch
	failKind   string
	calls      map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		candidates: make(map[string][]types.ProductMatch),
		calls:      make(map[string]int),
	}
}

var errBoom = errors.New("boom")

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func kindOf(body search.Query) (kind, text string) {
	query := asMap(body["query"])
	if mm := asMap(query["multi_match"]); mm != nil {
		return search.QueryMostSimilar, mm["query"].(string)
	}
	boolQ := asMap(query["bool"])
	if should, ok := boolQ["should"].([]any); ok {
		return search.QueryCandidates, asMap(asMap(should[1])["multi_match"])["query"].(string)
	}
	if _, ok := body["sort"]; ok {
		return search.QueryLowestPrice, ""
	}
	if _, ok := boolQ["must"].([]any); ok {
		return search.QueryInShop, ""
	}
	return search.QueryNearby, ""
}

func (f *fakeBackend) Search(_ context.Context, body search.Query) ([]types.ProductMatch, error) {
	kind, text := kindOf(body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++

	if kind == f.failKind {
		return nil, errBoom
	}
	switch kind {
	case search.QueryCandidates:
		return f.candidates[text], nil
	case search.QueryMostSimilar:
		return f.similar, nil
	case search.QueryLowestPrice:
		return f.cheapest, nil
	default:
		return f.single, nil
	}
}

func product(id, name, store string, price float64) types.ProductMatch {
	return types.ProductMatch{
		ID:           id,
		Name:         name,
		Price:        price,
		Localization: types.Localization{Grocery: store, Lat: 45.07, Lon: 7.68},
	}
}

func newTestPlanner(backend search.Backend, config *optimizer.Config) *Planner {
	return New(search.NewSearcher(backend, search.DefaultConfig()), optimizer.New(config, nil))
}

func TestFindLowestPriceFullCoverage(t *testing.T) {
	backend := newFakeBackend()
	backend.candidates["milk"] = []types.ProductMatch{
		product("a1", "milk", "store-a", 1.0),
		product("b1", "milk", "store-b", 0.5),
	}
	backend.candidates["bread"] = []types.ProductMatch{product("a2", "bread", "store-a", 2.0)}

	p := newTestPlanner(backend, nil)
	result, err := p.FindLowestPrice(context.Background(), []string{"milk", "bread"}, torino, "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "store-a", result.Store)
	assert.Equal(t, 3.0, result.TotalPrice)
	assert.Empty(t, result.Missing)
	for _, m := range result.Products {
		assert.NotNil(t, m.Distance)
	}
}

func TestFindLowestPricePartialCoverage(t *testing.T) {
	backend := newFakeBackend()
	backend.candidates["milk"] = []types.ProductMatch{product("a1", "milk", "store-a", 1.0)}
	backend.candidates["bread"] = []types.ProductMatch{product("a2", "bread", "store-a", 2.0)}
	backend.candidates["eggs"] = []types.ProductMatch{product("b1", "eggs", "store-b", 3.0)}

	p := newTestPlanner(backend, nil)
	result, err := p.FindLowestPrice(context.Background(), []string{"milk", "bread", "eggs"}, torino, "comodita")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "store-a", result.Store)
	assert.Equal(t, []string{"eggs"}, result.Missing)

	plans := Plans(result)
	require.Len(t, plans, 1)
	assert.Equal(t, []string{"eggs"}, plans[0].Missing)
	assert.Len(t, plans[0].Products, 2)
}

func TestFindLowestPriceSavingsMode(t *testing.T) {
	backend := newFakeBackend()
	backend.candidates["milk"] = []types.ProductMatch{product("a1", "milk", "store-a", 1.0)}
	backend.candidates["eggs"] = []types.ProductMatch{product("b1", "eggs", "store-b", 3.0)}

	p := newTestPlanner(backend, nil)
	result, err := p.FindLowestPrice(context.Background(), []string{"milk", "eggs"}, torino, "risparmio")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "store-a + store-b", result.Store)
	assert.Equal(t, 4.0, result.TotalPrice)
	assert.Empty(t, result.Missing)
}

func TestFindLowestPriceNoCoverage(t *testing.T) {
	backend := newFakeBackend()

	p := newTestPlanner(backend, nil)
	result, err := p.FindLowestPrice(context.Background(), []string{"milk"}, torino, "")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []types.ShoppingPlan{}, Plans(result))
}

func TestFindLowestPriceDedupesItems(t *testing.T) {
	backend := newFakeBackend()
	backend.candidates["Latte"] = []types.ProductMatch{product("a1", "latte", "store-a", 1.0)}

	p := newTestPlanner(backend, nil)
	result, err := p.FindLowestPrice(context.Background(), []string{"Latte", "latte!", " LATTE "}, torino, "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, backend.calls[search.QueryCandidates])
	assert.Len(t, result.Products, 1)
}

func TestFindLowestPriceValidation(t *testing.T) {
	config := optimizer.Defaults()
	config.MaxItems = 2

	tests := []struct {
		name  string
		items []string
		pos   types.Position
		mode  string
		field string
	}{
		{"empty list", nil, torino, "", "products"},
		{"blank item", []string{"milk", "?!"}, torino, "", "products[1]"},
		{"too many items", []string{"a", "b", "c"}, torino, "", "products"},
		{"bad latitude", []string{"milk"}, types.Position{Latitude: 91}, "", "position.latitude"},
		{"bad longitude", []string{"milk"}, types.Position{Longitude: -181}, "", "position.longitude"},
		{"nan latitude", []string{"milk"}, types.Position{Latitude: math.NaN(), Longitude: 7}, "", "position.latitude"},
		{"infinite longitude", []string{"milk"}, types.Position{Latitude: 45, Longitude: math.Inf(1)}, "", "position.longitude"},
		{"bad mode", []string{"milk"}, torino, "fastest", "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			p := newTestPlanner(backend, config)

			_, err := p.FindLowestPrice(context.Background(), tt.items, tt.pos, tt.mode)
			var invalid types.ErrInvalidRequest
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Empty(t, backend.calls, "no backend call on invalid input")
		})
	}
}

func TestFindLowestPriceBackendFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.failKind = search.QueryCandidates

	p := newTestPlanner(backend, nil)
	result, err := p.FindLowestPrice(context.Background(), []string{"milk"}, torino, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, result)
}

func TestSearchSimilarAndCheapest(t *testing.T) {
	backend := newFakeBackend()
	backend.similar = []types.ProductMatch{product("s1", "pasta", "conad", 1.5)}
	backend.cheapest = []types.ProductMatch{product("c1", "pasta", "coop", 0.9)}

	p := newTestPlanner(backend, nil)
	result, err := p.SearchSimilarAndCheapest(context.Background(), "pasta", torino)
	require.NoError(t, err)

	require.Len(t, result.MostSimilar, 1)
	require.Len(t, result.LowestPrice, 1)
	assert.Equal(t, "c1", result.LowestPrice[0].ID)
	assert.NotNil(t, result.MostSimilar[0].Distance)
	assert.NotNil(t, result.LowestPrice[0].Distance)
}

func TestSearchSimilarAndCheapestFallback(t *testing.T) {
	backend := newFakeBackend()
	backend.similar = []types.ProductMatch{
		product("s1", "pasta", "conad", 1.5),
		product("s2", "pasta", "coop", 0.8),
		product("s3", "pasta", "lidl", 1.1),
	}

	p := newTestPlanner(backend, nil)
	result, err := p.SearchSimilarAndCheapest(context.Background(), "pasta", torino)
	require.NoError(t, err)

	require.Len(t, result.LowestPrice, 1)
	assert.Equal(t, "s2", result.LowestPrice[0].ID)
	require.Len(t, result.MostSimilar, 2)
	assert.Equal(t, "s1", result.MostSimilar[0].ID)
	assert.Equal(t, "s3", result.MostSimilar[1].ID)
	assert.Len(t, backend.similar, 3, "backend slice not mutated")
}

func TestSearchSimilarAndCheapestSingleHitNoFallback(t *testing.T) {
	backend := newFakeBackend()
	backend.similar = []types.ProductMatch{product("s1", "pasta", "conad", 1.5)}

	p := newTestPlanner(backend, nil)
	result, err := p.SearchSimilarAndCheapest(context.Background(), "pasta", torino)
	require.NoError(t, err)

	assert.Len(t, result.MostSimilar, 1)
	assert.Empty(t, result.LowestPrice)
}

func TestSearchSimilarAndCheapestDegradesOnPriceFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.similar = []types.ProductMatch{
		product("s1", "pasta", "conad", 1.5),
		product("s2", "pasta", "coop", 0.8),
	}
	backend.failKind = search.QueryLowestPrice

	p := newTestPlanner(backend, nil)
	result, err := p.SearchSimilarAndCheapest(context.Background(), "pasta", torino)
	require.NoError(t, err)

	require.Len(t, result.LowestPrice, 1)
	assert.Equal(t, "s2", result.LowestPrice[0].ID)
}

func TestSearchSimilarAndCheapestFailsOnSimilarFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.failKind = search.QueryMostSimilar

	p := newTestPlanner(backend, nil)
	_, err := p.SearchSimilarAndCheapest(context.Background(), "pasta", torino)
	assert.ErrorIs(t, err, errBoom)

	_, err = p.SearchSimilarAndCheapest(context.Background(), "  ", torino)
	var invalid types.ErrInvalidRequest
	assert.ErrorAs(t, err, &invalid)
}

func TestCheckProductExists(t *testing.T) {
	backend := newFakeBackend()
	p := newTestPlanner(backend, nil)

	result, err := p.CheckProductExists(context.Background(), "latte", torino)
	require.NoError(t, err)
	assert.False(t, result.Exists)
	assert.Nil(t, result.Details)

	backend.single = []types.ProductMatch{product("p1", "latte", "conad", 1.2)}
	result, err = p.CheckProductExists(context.Background(), "latte", torino)
	require.NoError(t, err)
	assert.True(t, result.Exists)
	require.NotNil(t, result.Details)
	require.NotNil(t, result.Details.Distance)
	assert.Equal(t, "latte", result.Product)
}

func TestFindProductInShop(t *testing.T) {
	backend := newFakeBackend()
	backend.single = []types.ProductMatch{product("p1", "latte", "conad", 1.2)}
	p := newTestPlanner(backend, nil)

	result, err := p.FindProductInShop(context.Background(), "latte", "conad", torino)
	require.NoError(t, err)
	assert.True(t, result.Exists)
	assert.Equal(t, "conad", result.Shop)
	assert.Equal(t, 1, backend.calls[search.QueryInShop])

	_, err = p.FindProductInShop(context.Background(), "latte", "", torino)
	var invalid types.ErrInvalidRequest
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "shop", invalid.Field)

	backend.failKind = search.QueryInShop
	_, err = p.FindProductInShop(context.Background(), "latte", "conad", torino)
	assert.ErrorIs(t, err, errBoom)
}
