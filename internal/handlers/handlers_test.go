package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spesa/search-service/internal/database"
	"github.com/spesa/search-service/internal/optimizer"
	"github.com/spesa/search-service/internal/planner"
	"github.com/spesa/search-service/internal/search"
	"github.com/spesa/search-service/internal/types"
)

// stubBackend answers every search with the hits registered for the first
// item text found in the body, or with err.
type stubBackend struct {
	hits map[string][]types.ProductMatch
	err  error
}

func (s *stubBackend) Search(_ context.Context, body search.Query) ([]types.ProductMatch, error) {
	if s.err != nil {
		return nil, s.err
	}
	raw, _ := json.Marshal(body)
	for text, hits := range s.hits {
		if strings.Contains(string(raw), fmt.Sprintf("%q", text)) {
			return hits, nil
		}
	}
	return nil, nil
}

func (s *stubBackend) Ping(context.Context) error { return s.err }

type stubCatalog struct {
	stores   []database.Store
	products map[int32][]database.Product
	err      error
}

func (s *stubCatalog) ListStores(context.Context) ([]database.Store, error) {
	return s.stores, s.err
}

func (s *stubCatalog) ProductsByStore(_ context.Context, id int32) ([]database.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products[id], nil
}

func hit(id, name, store string, price float64) types.ProductMatch {
	return types.ProductMatch{
		ID:           id,
		Name:         name,
		Price:        price,
		Localization: types.Localization{Grocery: store, Lat: 45.07, Lon: 7.68},
	}
}

func setupRouter(backend *stubBackend, cat StoreCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)

	p := planner.New(search.NewSearcher(backend, search.DefaultConfig()), optimizer.New(nil, nil))
	Init(p, cat, backend)

	router := gin.New()
	RegisterOps(router)
	Register(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLowestPrice(t *testing.T) {
	backend := &stubBackend{hits: map[string][]types.ProductMatch{
		"latte": {hit("a1", "latte", "conad", 1.2), hit("b1", "latte", "coop", 1.0)},
		"pane":  {hit("a2", "pane", "conad", 2.0)},
	}}
	router := setupRouter(backend, nil)

	w := do(t, router, http.MethodPost, "/product/lowest-price",
		`{"products":["latte","pane"],"position":{"latitude":45.07,"longitude":7.68}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var plans []types.ShoppingPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "conad", plans[0].Shop)
	assert.InDelta(t, 3.2, plans[0].TotalPrice, 1e-9)
	assert.Len(t, plans[0].Products, 2)
	assert.Empty(t, plans[0].Missing)
}

func TestLowestPriceNoCoverage(t *testing.T) {
	router := setupRouter(&stubBackend{}, nil)

	w := do(t, router, http.MethodPost, "/product/lowest-price",
		`{"products":["caviale"],"position":{"latitude":45.07,"longitude":7.68}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestLowestPriceBadRequests(t *testing.T) {
	router := setupRouter(&stubBackend{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"products":`},
		{"missing position", `{"products":["latte"]}`},
		{"empty list", `{"products":[],"position":{"latitude":45,"longitude":7}}`},
		{"blank item", `{"products":["  "],"position":{"latitude":45,"longitude":7}}`},
		{"latitude out of range", `{"products":["latte"],"position":{"latitude":91,"longitude":7}}`},
		{"unknown mode", `{"products":["latte"],"position":{"latitude":45,"longitude":7},"mode":"veloce"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/product/lowest-price", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestLowestPriceBackendUnavailable(t *testing.T) {
	backend := &stubBackend{err: fmt.Errorf("%w: connection refused", search.ErrBackendUnavailable)}
	router := setupRouter(backend, nil)

	w := do(t, router, http.MethodPost, "/product/lowest-price",
		`{"products":["latte"],"position":{"latitude":45.07,"longitude":7.68}}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLowestPriceUnexpectedError(t *testing.T) {
	router := setupRouter(&stubBackend{err: errors.New("boom")}, nil)

	w := do(t, router, http.MethodPost, "/product/lowest-price",
		`{"products":["latte"],"position":{"latitude":45.07,"longitude":7.68}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestSearch(t *testing.T) {
	backend := &stubBackend{hits: map[string][]types.ProductMatch{
		"latte": {hit("a1", "latte", "conad", 1.2)},
	}}
	router := setupRouter(backend, nil)

	w := do(t, router, http.MethodGet, "/search?query=latte&position_latitude=45.07&position_longitude=7.68", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.MostSimilar)

	w = do(t, router, http.MethodGet, "/search?query=latte", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/search?query=latte&position_latitude=NaN&position_longitude=7.68", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "position.latitude")
}

func TestProductExists(t *testing.T) {
	backend := &stubBackend{hits: map[string][]types.ProductMatch{
		"latte": {hit("a1", "latte", "conad", 1.2)},
	}}
	router := setupRouter(backend, nil)

	w := do(t, router, http.MethodPost, "/product/exists",
		`{"product":"latte","position":{"latitude":45.07,"longitude":7.68}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.ExistsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Exists)
	require.NotNil(t, result.Details)
	assert.Equal(t, "a1", result.Details.ID)

	w = do(t, router, http.MethodPost, "/product/exists", `{"product":"latte"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductInShop(t *testing.T) {
	router := setupRouter(&stubBackend{}, nil)

	w := do(t, router, http.MethodPost, "/product/in-shop",
		`{"product":"latte","shop":"conad","position":{"latitude":45.07,"longitude":7.68}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.InShopResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Exists)
	assert.Equal(t, "conad", result.Shop)
}

func TestStores(t *testing.T) {
	cat := &stubCatalog{
		stores: []database.Store{{ID: 1, Grocery: "conad", Lat: 45.07, Lng: 7.68}},
		products: map[int32][]database.Product{
			1: {{ID: 10, Name: "latte", CurrentPrice: 1.2}},
		},
	}
	router := setupRouter(&stubBackend{}, cat)

	w := do(t, router, http.MethodGet, "/stores", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stores []database.Store
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stores))
	require.Len(t, stores, 1)
	assert.Equal(t, "conad", stores[0].Grocery)

	w = do(t, router, http.MethodGet, "/store/1/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	var products []database.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)

	w = do(t, router, http.MethodGet, "/store/abc/products", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoresWithoutCatalog(t *testing.T) {
	router := setupRouter(&stubBackend{}, nil)

	w := do(t, router, http.MethodGet, "/stores", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(&stubBackend{}, &stubCatalog{})

	w := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "connected", resp.Elasticsearch)

	router = setupRouter(&stubBackend{err: errors.New("down")}, nil)
	w = do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "not configured", resp.Database)
}
