package search

import (
	"strconv"

	"github.com/spesa/search-service/internal/matching"
	"github.com/spesa/search-service/internal/types"
)

// Query is an Elasticsearch search request body.
type Query map[string]any

var sourceFields = []string{
	"full_name", "name", "description", "current_price", "discount", "grocery", "lat", "lon",
}

// textFields are the analyzed fields matched by prefix and fuzzy clauses.
// full_name carries the brand and size, so it weighs more.
var textFields = []string{"full_name^3", "name", "description"}

func geoFilter(pos types.Position, radiusKm float64) map[string]any {
	return map[string]any{
		"geo_distance": map[string]any{
			"distance": strconv.FormatFloat(radiusKm, 'f', -1, 64) + "km",
			"location": map[string]any{
				"lat": pos.Latitude,
				"lon": pos.Longitude,
			},
		},
	}
}

// BuildProductQuery builds the per-item query used by the shopping list optimizer.
//
// The should clauses, in ranking order:
//   - exact term on name.keyword against the normalized item, scored as a
//     constant ExactBoost
//   - phrase prefix on the text fields
//   - fuzzy multi_match on the text fields
//
// At least one clause must match, and candidates are restricted to stores
// within radius of pos.
func (c Config) BuildProductQuery(item string, pos types.Position) Query {
	return Query{
		"_source": sourceFields,
		"size":    c.HitsPerItem,
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{
						"constant_score": map[string]any{
							"filter": map[string]any{
								"term": map[string]any{
									"name.keyword": matching.NormalizeName(item),
								},
							},
							"boost": c.ExactBoost,
						},
					},
					map[string]any{
						"multi_match": map[string]any{
							"query":  item,
							"fields": textFields,
							"type":   "phrase_prefix",
						},
					},
					map[string]any{
						"multi_match": map[string]any{
							"query":     item,
							"fields":    textFields,
							"fuzziness": "AUTO",
						},
					},
				},
				"minimum_should_match": 1,
				"filter":               geoFilter(pos, c.OptimizeRadiusKm),
			},
		},
	}
}

func similarityClause(text string) map[string]any {
	return map[string]any{
		"multi_match": map[string]any{
			"query":     text,
			"fields":    []string{"full_name", "name", "name.keyword", "description"},
			"type":      "best_fields",
			"fuzziness": "AUTO",
		},
	}
}

// BuildMostSimilarQuery ranks products by text similarity only, regardless of location.
func (c Config) BuildMostSimilarQuery(text string) Query {
	return Query{
		"_source": sourceFields,
		"size":    c.HitsPerItem,
		"query":   similarityClause(text),
	}
}

// BuildLowestPriceQuery returns similar products near pos sorted by price,
// skipping the given IDs.
func (c Config) BuildLowestPriceQuery(text string, pos types.Position, excludeIDs []string) Query {
	boolQuery := map[string]any{
		"must":   similarityClause(text),
		"filter": geoFilter(pos, c.LowestPriceRadiusKm),
	}
	if len(excludeIDs) > 0 {
		boolQuery["must_not"] = map[string]any{
			"ids": map[string]any{"values": excludeIDs},
		}
	}

	return Query{
		"_source": sourceFields,
		"size":    c.HitsPerItem,
		"query":   map[string]any{"bool": boolQuery},
		"sort": []any{
			map[string]any{"current_price": "asc"},
		},
	}
}

// BuildNearbyQuery looks for the best single match near pos.
func (c Config) BuildNearbyQuery(product string, pos types.Position) Query {
	return Query{
		"_source": sourceFields,
		"size":    1,
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     product,
						"fields":    []string{"full_name", "name", "description"},
						"type":      "best_fields",
						"fuzziness": "AUTO",
					},
				},
				"filter": geoFilter(pos, c.NearbyRadiusKm),
			},
		},
	}
}

// BuildInShopQuery looks for an exact product name in a named store near pos.
func (c Config) BuildInShopQuery(product, shop string, pos types.Position) Query {
	return Query{
		"_source": sourceFields,
		"size":    1,
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"term": map[string]any{"name.keyword": map[string]any{"value": product}}},
					map[string]any{"term": map[string]any{"grocery.keyword": map[string]any{"value": shop}}},
				},
				"filter": geoFilter(pos, c.NearbyRadiusKm),
			},
		},
	}
}
