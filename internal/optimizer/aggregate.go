package optimizer

import (
	"sort"

	"github.com/spesa/search-service/internal/matching"
	"github.com/spesa/search-service/internal/types"
)

// Aggregate regroups per-item matches into per-store baskets in a single pass.
// Every match gets its distance from pos attached and is keyed by the
// normalized form of the requested item that produced it. Within a store only
// the cheapest match per key survives. Matches without a store are skipped.
//
// Each requested item is one unit. A product returned for two requests, such
// as "Latte intero" for both "latte" and "latte intero", fills both keys and
// its price counts once per key.
func Aggregate(candidates map[string][]types.ProductMatch, pos types.Position) map[string]*StoreBasket {
	items := make([]string, 0, len(candidates))
	for item := range candidates {
		items = append(items, item)
	}
	sort.Strings(items)

	baskets := make(map[string]*StoreBasket)
	for _, item := range items {
		key := matching.NormalizeName(item)
		if key == "" {
			continue
		}
		for _, m := range candidates[item] {
			storeID := m.StoreID()
			if storeID == "" {
				continue
			}

			distance := DistanceFrom(pos, m)
			basket, ok := baskets[storeID]
			if !ok {
				basket = NewStoreBasket(storeID)
				basket.Distance = distance
				baskets[storeID] = basket
			}
			basket.Offer(key, m.WithDistance(distance))
		}
	}

	return baskets
}
