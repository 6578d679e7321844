package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/spesa/search-service/internal/database"
	"github.com/spesa/search-service/internal/planner"
	"github.com/spesa/search-service/internal/search"
	"github.com/spesa/search-service/internal/types"
)

// StoreCatalog is the store/product read path.
type StoreCatalog interface {
	ListStores(ctx context.Context) ([]database.Store, error)
	ProductsByStore(ctx context.Context, storeID int32) ([]database.Product, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service instances (initialized by the application)
var (
	shoppingPlanner *planner.Planner
	catalog         StoreCatalog
	searchBackend   Pinger
)

// Init wires the handler dependencies. This should be called during
// application startup. Any argument may be nil when the dependency is not
// configured; its routes then answer 503.
func Init(p *planner.Planner, c StoreCatalog, backend Pinger) {
	shoppingPlanner = p
	catalog = c
	searchBackend = backend
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps an error onto its HTTP status: invalid input is 400,
// backend failures are 503, abandoned requests are 499 and anything else is 500.
func respondError(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())

	var invalid types.ErrInvalidRequest
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalid.Error(), Field: invalid.Field})
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(499)
	case errors.Is(err, search.ErrBackendUnavailable), errors.Is(err, context.DeadlineExceeded):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Search backend unavailable")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "search backend unavailable"})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func unavailable(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: what + " not configured"})
}
