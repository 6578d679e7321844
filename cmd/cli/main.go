package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spesa/search-service/config"
	"github.com/spesa/search-service/internal/app"
	"github.com/spesa/search-service/internal/types"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	latitude  float64
	longitude float64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "search-service",
	Short: "Search Service CLI - product search and shopping list optimization",
	Long: `A CLI for the search service. Searches products near a position, checks
product availability, picks the cheapest store (or store pair) for a shopping
list, and seeds a development Elasticsearch index with synthetic products.`,
	PersistentPreRunE: persistentPreRun,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

// persistentPreRun loads configuration and the logger before each command
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logs go to stderr so command output can be piped
	logger = app.NewLogger(cfg.Logging, os.Stderr, "search-cli")
	return nil
}

// addPositionFlags registers the caller position flags on cmd
func addPositionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&latitude, "lat", 45.0703, "caller latitude")
	cmd.Flags().Float64Var(&longitude, "lon", 7.6869, "caller longitude")
}

func position() types.Position {
	return types.Position{Latitude: latitude, Longitude: longitude}
}

// newApp wires the service for one command run
func newApp(ctx context.Context) (*app.App, error) {
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize service: %w", err)
	}
	return svc, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
