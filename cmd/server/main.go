package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spesa/search-service/config"
	"github.com/spesa/search-service/internal/app"
	"github.com/spesa/search-service/internal/handlers"
	"github.com/spesa/search-service/internal/middleware"
	"github.com/spesa/search-service/internal/telemetry"
)

// @title Search Service API
// @version 1.0
// @description Product search and shopping list price optimization over nearby stores.
// @BasePath /
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Logging, os.Stdout, "search-service")

	logger.Info().Msg("Starting search service")

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	svc, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer svc.Close()

	if err := svc.Search.Ping(ctx); err != nil {
		logger.Warn().Err(err).Strs("addresses", cfg.Elasticsearch.Addresses).Msg("Elasticsearch not reachable at startup")
	} else {
		logger.Info().Str("index", cfg.Search.Index).Msg("Elasticsearch connected")
	}
	if svc.Catalog != nil {
		logger.Info().Msg("Database connected")
	} else {
		logger.Warn().Msg("DATABASE_URL not set, store catalog routes disabled")
	}

	// Typed nil interfaces would defeat the handler nil checks.
	var catalog handlers.StoreCatalog
	if svc.Catalog != nil {
		catalog = svc.Catalog
	}
	handlers.Init(svc.Planner, catalog, svc.Search)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	done := make(chan struct{})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.Logger())

	handlers.RegisterOps(router)
	if cfg.Server.EnableDocs {
		handlers.RegisterDocs(router)
	}

	api := router.Group("/")
	api.Use(middleware.APIKeyMiddleware(cfg.Auth.APIKey))
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimitMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.Burst,
			IdleTTL:           10 * time.Minute,
		}, done))
	}
	handlers.Register(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	close(done)

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}
