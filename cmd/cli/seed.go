package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/spesa/search-service/internal/search"
	"github.com/spesa/search-service/internal/seed"
)

var seedOpts = seed.DefaultOptions()
var seedValue int64

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the products index and fill it with synthetic products",
	Long: `Create the products index (if missing) and bulk-index synthetic grocery
products spread over stores around a center position. Meant for local
development only.`,
	Example: `  search-service seed --count 5000
  search-service seed --count 500 --stores 4 --lat 45.46 --lon 9.19 --radius 10`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedOpts.Count, "count", seedOpts.Count, "number of products")
	seedCmd.Flags().IntVar(&seedOpts.Stores, "stores", seedOpts.Stores, "number of stores")
	seedCmd.Flags().Float64Var(&seedOpts.Center.Latitude, "lat", seedOpts.Center.Latitude, "center latitude")
	seedCmd.Flags().Float64Var(&seedOpts.Center.Longitude, "lon", seedOpts.Center.Longitude, "center longitude")
	seedCmd.Flags().Float64Var(&seedOpts.RadiusKm, "radius", seedOpts.RadiusKm, "store scatter radius in km")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed (default: current time)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := search.NewClient(cfg.Elasticsearch, cfg.Search.Index, cfg.Search.Breaker)
	if err != nil {
		return err
	}

	created, err := search.EnsureIndex(ctx, client.ES(), client.Index())
	if err != nil {
		return err
	}
	if created {
		logger.Info().Str("index", client.Index()).Msg("Created index")
	}

	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	docs, err := seed.Generate(faker.NewWithSeed(rand.NewSource(seedValue)), seedOpts)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(docs)), "indexing")
	stats, err := search.BulkIndex(ctx, client.ES(), client.Index(), docs, func() {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	logger.Info().
		Str("index", client.Index()).
		Uint64("indexed", stats.Indexed).
		Uint64("failed", stats.Failed).
		Msg("Seeding complete")

	if stats.Failed > 0 {
		return fmt.Errorf("%d documents failed to index", stats.Failed)
	}
	return nil
}
