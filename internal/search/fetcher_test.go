package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spesa/search-service/internal/types"
)

// fakeBackend answers queries by the item text the query was built for.
type fakeBackend struct {
	mu       sync.Mutex
	hits     map[string][]types.ProductMatch
	fail     map[string]error
	delay    time.Duration
	queries  []Query
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		hits: make(map[string][]types.ProductMatch),
		fail: make(map[string]error),
	}
}

func itemText(body Query) string {
	boolQ := body["query"].(map[string]any)["bool"].(map[string]any)
	should := boolQ["should"].([]any)
	return should[1].(map[string]any)["multi_match"].(map[string]any)["query"].(string)
}

func (f *fakeBackend) Search(ctx context.Context, body Query) ([]types.ProductMatch, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	f.mu.Lock()
	f.queries = append(f.queries, body)
	item := itemText(body)
	hits, err := f.hits[item], f.fail[item]
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func hit(id, name, store string, price float64) types.ProductMatch {
	return types.ProductMatch{ID: id, Name: name, Price: price, Localization: types.Localization{Grocery: store}}
}

func TestFetchCandidatesOneQueryPerItem(t *testing.T) {
	backend := newFakeBackend()
	backend.hits["latte"] = []types.ProductMatch{hit("1", "Latte Intero", "conad", 1.2)}
	backend.hits["pane"] = []types.ProductMatch{hit("2", "Pane Comune", "coop", 2.0)}

	searcher := NewSearcher(backend, DefaultConfig())
	candidates, err := searcher.FetchCandidates(context.Background(), []string{"latte", "pane", "uova"}, torino)
	require.NoError(t, err)

	assert.Len(t, backend.queries, 3)
	require.Len(t, candidates, 3)
	assert.Len(t, candidates["latte"], 1)
	assert.Len(t, candidates["pane"], 1)
	assert.Empty(t, candidates["uova"])
}

func TestFetchCandidatesPostFilter(t *testing.T) {
	backend := newFakeBackend()
	backend.hits["Brodo di Verdure"] = []types.ProductMatch{
		hit("1", "Brodo di verdure bio", "conad", 1.0),
		hit("2", "Brodo di carne", "conad", 0.8),
		hit("3", "Dado brodo di verdure!", "coop", 0.9),
	}

	searcher := NewSearcher(backend, DefaultConfig())
	candidates, err := searcher.FetchCandidates(context.Background(), []string{"Brodo di Verdure"}, torino)
	require.NoError(t, err)

	got := candidates["Brodo di Verdure"]
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestFetchCandidatesFailsWhole(t *testing.T) {
	backend := newFakeBackend()
	backend.hits["latte"] = []types.ProductMatch{hit("1", "latte", "conad", 1.2)}
	backend.fail["pane"] = ErrBackendUnavailable

	searcher := NewSearcher(backend, DefaultConfig())
	candidates, err := searcher.FetchCandidates(context.Background(), []string{"latte", "pane"}, torino)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	assert.Contains(t, err.Error(), `"pane"`)
	assert.Nil(t, candidates)
}

func TestFetchCandidatesRespectsConcurrencyLimit(t *testing.T) {
	backend := newFakeBackend()
	backend.delay = 20 * time.Millisecond

	cfg := DefaultConfig()
	cfg.FetchConcurrency = 2
	searcher := NewSearcher(backend, cfg)

	items := []string{"a", "b", "c", "d", "e", "f"}
	_, err := searcher.FetchCandidates(context.Background(), items, torino)
	require.NoError(t, err)

	assert.LessOrEqual(t, backend.maxSeen.Load(), int32(2))
	assert.Len(t, backend.queries, len(items))
}

func TestFetchCandidatesCancelled(t *testing.T) {
	backend := newFakeBackend()
	backend.delay = time.Second

	searcher := NewSearcher(backend, DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := searcher.FetchCandidates(ctx, []string{"latte", "pane"}, torino)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

// staticBackend returns the same hits for any query.
type staticBackend struct {
	hits []types.ProductMatch
	err  error
	last Query
}

func (s *staticBackend) Search(_ context.Context, body Query) ([]types.ProductMatch, error) {
	s.last = body
	return s.hits, s.err
}

func TestNearbyAndInShop(t *testing.T) {
	backend := &staticBackend{hits: []types.ProductMatch{hit("1", "latte", "conad", 1.2), hit("2", "latte", "coop", 1.1)}}
	searcher := NewSearcher(backend, DefaultConfig())

	got, err := searcher.Nearby(context.Background(), "latte", torino)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)

	got, err = searcher.InShop(context.Background(), "latte", "conad", torino)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 1, backend.last["size"])

	backend.hits = nil
	got, err = searcher.Nearby(context.Background(), "latte", torino)
	require.NoError(t, err)
	assert.Nil(t, got)

	backend.err = ErrBackendUnavailable
	_, err = searcher.InShop(context.Background(), "latte", "conad", torino)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
