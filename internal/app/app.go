// Package app assembles the search service from its configuration. It is
// shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spesa/search-service/config"
	"github.com/spesa/search-service/internal/database"
	"github.com/spesa/search-service/internal/optimizer"
	"github.com/spesa/search-service/internal/planner"
	"github.com/spesa/search-service/internal/search"
)

// App holds the wired service components.
type App struct {
	Config   *config.Config
	Search   *search.Client
	Searcher *search.Searcher
	Planner  *planner.Planner
	// Catalog is nil when no database URL is configured.
	Catalog *database.Catalog
}

// NewLogger builds the process logger and installs it as the zerolog global,
// so package loggers derived from log.With() share level and output.
func NewLogger(cfg config.LoggingConfig, out io.Writer, service string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if out == nil {
		out = os.Stdout
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Str("service", service).Logger()
	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	return logger
}

// New wires the search client, planner and, when configured, the catalog.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := search.NewClient(cfg.Elasticsearch, cfg.Search.Index, cfg.Search.Breaker)
	if err != nil {
		return nil, err
	}

	searcher := search.NewSearcher(client, cfg.Search)
	opt := optimizer.New(&cfg.Optimizer, nil)

	a := &App{
		Config:   cfg,
		Search:   client,
		Searcher: searcher,
		Planner:  planner.New(searcher, opt),
	}

	if cfg.Database.URL != "" {
		if err := database.Connect(ctx, database.PoolConfig{
			URL:             cfg.Database.URL,
			MaxConns:        cfg.Database.MaxConnections,
			MinConns:        cfg.Database.MinConnections,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		}); err != nil {
			return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
		}
		a.Catalog = database.NewCatalog(database.Pool())
	}

	return a, nil
}

// Close releases the catalog pool.
func (a *App) Close() {
	if a.Catalog != nil {
		database.Close()
	}
}
