package optimizer

import (
	"sort"
	"strings"

	"github.com/spesa/search-service/internal/matching"
	"github.com/spesa/search-service/internal/types"
)

// Strategy names reported on results and metrics.
const (
	StrategySingle = "single"
	StrategyPair   = "pair"
)

// KeySet is a set of normalized item keys.
type KeySet map[string]struct{}

// NewKeySet normalizes the requested items into a set of keys.
// Items that normalize to an empty key are dropped.
func NewKeySet(items []string) KeySet {
	set := make(KeySet, len(items))
	for _, item := range items {
		if key := matching.NormalizeName(item); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the keys in lexical order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StoreBasket holds, per normalized key, the cheapest match seen at one store.
type StoreBasket struct {
	StoreID  string
	Distance float64 // Distance from the caller in km
	Items    map[string]types.ProductMatch
}

// NewStoreBasket creates an empty basket for a store.
func NewStoreBasket(storeID string) *StoreBasket {
	return &StoreBasket{
		StoreID: storeID,
		Items:   make(map[string]types.ProductMatch),
	}
}

// Offer folds a match into the basket. The match replaces the current one for
// key only when it is strictly cheaper, so the first of equally priced matches
// is kept. Returns true if the basket changed.
func (b *StoreBasket) Offer(key string, m types.ProductMatch) bool {
	current, ok := b.Items[key]
	if ok && m.Price >= current.Price {
		return false
	}
	b.Items[key] = m
	return true
}

// Lookup returns the basket match for key.
func (b *StoreBasket) Lookup(key string) (types.ProductMatch, bool) {
	m, ok := b.Items[key]
	return m, ok
}

// CoverageResult is a candidate answer for a shopping list.
type CoverageResult struct {
	Store      string               // Store ID, or "storeA + storeB" for pairs
	Stores     []string             // Stores contributing to the basket
	TotalPrice float64              // Sum of basket prices
	Products   []types.ProductMatch // Basket products ordered by key
	Missing    []string             // Requested keys not found, ordered
	Found      int                  // Number of requested keys satisfied
	Strategy   string               // StrategySingle or StrategyPair
}

// FullCoverage reports whether every requested key was satisfied.
func (r *CoverageResult) FullCoverage() bool {
	return len(r.Missing) == 0
}

// CoverageRatio returns found / (found + missing).
func (r *CoverageResult) CoverageRatio() float64 {
	total := r.Found + len(r.Missing)
	if total == 0 {
		return 0
	}
	return float64(r.Found) / float64(total)
}

// PairLabel builds the synthetic store label used for two-store results.
func PairLabel(a, b string) string {
	return strings.Join([]string{a, b}, " + ")
}

// sortedStoreIDs returns basket store IDs in lexical order so that ties are
// resolved the same way on every run.
func sortedStoreIDs(baskets map[string]*StoreBasket) []string {
	ids := make([]string, 0, len(baskets))
	for id := range baskets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
