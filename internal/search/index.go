package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// Document is a product as stored in the products index.
type Document struct {
	ID           string   `json:"-"`
	Name         string   `json:"name"`
	FullName     string   `json:"full_name"`
	Description  string   `json:"description"`
	CurrentPrice float64  `json:"current_price"`
	Discount     *float64 `json:"discount,omitempty"`
	Grocery      string   `json:"grocery"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	Location     GeoPoint `json:"location"`
}

// GeoPoint is an Elasticsearch geo_point.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IndexMapping is the products index definition. name.keyword is indexed
// through the canonical normalizer so exact term lookups compare normalized
// item keys.
const IndexMapping = `{
  "settings": {
    "analysis": {
      "char_filter": {
        "strip_symbols": {"type": "pattern_replace", "pattern": "[^\\p{L}\\p{N}\\s_]", "replacement": ""},
        "trim_separators": {"type": "pattern_replace", "pattern": "^[\\s_]+|[\\s_]+$", "replacement": ""},
        "join_separators": {"type": "pattern_replace", "pattern": "[\\s_]+", "replacement": "_"}
      },
      "normalizer": {
        "canonical": {
          "type": "custom",
          "char_filter": ["strip_symbols", "trim_separators", "join_separators"],
          "filter": ["lowercase"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "name": {"type": "text", "fields": {"keyword": {"type": "keyword", "normalizer": "canonical"}}},
      "full_name": {"type": "text"},
      "description": {"type": "text"},
      "current_price": {"type": "float"},
      "discount": {"type": "float"},
      "grocery": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "lat": {"type": "float"},
      "lon": {"type": "float"},
      "location": {"type": "geo_point"}
    }
  }
}`

// EnsureIndex creates the index with IndexMapping unless it already exists.
// Returns true if the index was created.
func EnsureIndex(ctx context.Context, es *elasticsearch.Client, index string) (bool, error) {
	res, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return false, nil
	}

	res, err = es.Indices.Create(index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(strings.NewReader(IndexMapping)),
	)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return false, fmt.Errorf("failed to create index %s: %s", index, res.Status())
	}
	return true, nil
}

// BulkStats summarizes a bulk indexing run.
type BulkStats struct {
	Indexed uint64
	Failed  uint64
}

// BulkIndex streams docs into index. onDone is called once per document
// after the backend acknowledged it (successfully or not) and may be nil.
func BulkIndex(ctx context.Context, es *elasticsearch.Client, index string, docs []Document, onDone func()) (BulkStats, error) {
	var stats BulkStats

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     es,
		Index:      index,
		NumWorkers: 2,
		FlushBytes: 1 << 20,
	})
	if err != nil {
		return stats, fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var indexed, failed atomic.Uint64
	done := func() {
		if onDone != nil {
			onDone()
		}
	}

	for _, doc := range docs {
		doc.Location = GeoPoint{Lat: doc.Lat, Lon: doc.Lon}
		body, err := json.Marshal(doc)
		if err != nil {
			return stats, fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
		}

		err = indexer.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnSuccess: func(context.Context, esutil.BulkIndexerItem, esutil.BulkIndexerResponseItem) {
				indexed.Add(1)
				done()
			},
			OnFailure: func(context.Context, esutil.BulkIndexerItem, esutil.BulkIndexerResponseItem, error) {
				failed.Add(1)
				done()
			},
		})
		if err != nil {
			return stats, fmt.Errorf("failed to queue document %s: %w", doc.ID, err)
		}
	}

	if err := indexer.Close(ctx); err != nil {
		return stats, fmt.Errorf("bulk indexing failed: %w", err)
	}

	stats.Indexed = indexed.Load()
	stats.Failed = failed.Load()
	return stats, nil
}
