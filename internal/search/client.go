package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/spesa/search-service/internal/types"
)

// ErrBackendUnavailable is returned when the search backend cannot serve a query.
var ErrBackendUnavailable = errors.New("search backend unavailable")

// Backend runs a search request body and returns its hits in rank order.
type Backend interface {
	Search(ctx context.Context, body Query) ([]types.ProductMatch, error)
}

// ClientConfig holds Elasticsearch connection settings.
type ClientConfig struct {
	Addresses           []string      `mapstructure:"addresses"`
	Username            string        `mapstructure:"username"`
	Password            string        `mapstructure:"password"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
}

// Client is the Elasticsearch backend. The underlying client keeps a pool of
// connections and is safe for concurrent use by many in-flight requests.
type Client struct {
	es      *elasticsearch.Client
	index   string
	breaker *Breaker
	logger  zerolog.Logger
}

// NewClient creates an Elasticsearch backend for the given index.
// Transport-level retries are disabled; failures surface to the caller.
func NewClient(cfg ClientConfig, index string, breaker BreakerConfig) (*Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch addresses are required")
	}
	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = 32
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableRetry: true,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			ResponseHeaderTimeout: cfg.RequestTimeout,
			IdleConnTimeout:       90 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	logger := log.With().Str("component", "search_client").Logger()
	return &Client{
		es:      es,
		index:   index,
		breaker: NewBreaker(breaker, logger),
		logger:  logger,
	}, nil
}

// ES exposes the underlying client for index management.
func (c *Client) ES() *elasticsearch.Client {
	return c.es
}

// Index returns the products index name.
func (c *Client) Index() string {
	return c.index
}

// Breaker returns the circuit breaker guarding the client.
func (c *Client) Breaker() *Breaker {
	return c.breaker
}

// Ping checks that the cluster answers.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Info(c.es.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrBackendUnavailable, res.Status())
	}
	return nil
}

// Search implements Backend.
func (c *Client) Search(ctx context.Context, body Query) ([]types.ProductMatch, error) {
	ctx, span := otel.Tracer("search").Start(ctx, "elasticsearch.search")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "elasticsearch"), attribute.String("index", c.index))

	if !c.breaker.Allow() {
		span.SetStatus(codes.Error, "circuit open")
		return nil, fmt.Errorf("%w: circuit open", ErrBackendUnavailable)
	}

	matches, err := c.search(ctx, body)
	if err != nil {
		// Abandoned requests say nothing about backend health.
		if ctx.Err() != nil {
			c.breaker.Abandon()
			return nil, ctx.Err()
		}
		c.breaker.RecordFailure(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	c.breaker.RecordSuccess()
	span.SetAttributes(attribute.Int("hits", len(matches)))
	return matches, nil
}

func (c *Client) search(ctx context.Context, body Query) ([]types.ProductMatch, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		reason, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("%w: %s: %s", ErrBackendUnavailable, res.Status(), bytes.TrimSpace(reason))
	}

	matches, err := ParseHits(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return matches, nil
}

type hitSource struct {
	FullName     string   `json:"full_name"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	CurrentPrice float64  `json:"current_price"`
	Discount     *float64 `json:"discount"`
	Grocery      string   `json:"grocery"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string    `json:"_id"`
			Source hitSource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ParseHits decodes a search response body into matches. Missing source
// fields decode to their zero value.
func ParseHits(r io.Reader) ([]types.ProductMatch, error) {
	var resp searchResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	matches := make([]types.ProductMatch, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		src := hit.Source
		matches = append(matches, types.ProductMatch{
			ID:          hit.ID,
			Name:        src.Name,
			FullName:    src.FullName,
			Description: src.Description,
			Price:       src.CurrentPrice,
			Discount:    src.Discount,
			Localization: types.Localization{
				Grocery: src.Grocery,
				Lat:     src.Lat,
				Lon:     src.Lon,
			},
		})
	}
	return matches, nil
}
