package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchXLSX string
	existsShop string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search products similar to a query and the cheapest nearby",
	Example: `  search-service search "latte intero"
  search-service search pane --lat 45.46 --lon 9.19 --xlsx pane.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// existsCmd represents the exists command
var existsCmd = &cobra.Command{
	Use:   "exists <product>",
	Short: "Check whether a product is sold nearby, or by a given shop",
	Example: `  search-service exists latte
  search-service exists latte --shop conad`,
	Args: cobra.ExactArgs(1),
	RunE: runExists,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(existsCmd)

	addPositionFlags(searchCmd)
	searchCmd.Flags().StringVar(&searchXLSX, "xlsx", "", "write the result to an Excel workbook")

	addPositionFlags(existsCmd)
	existsCmd.Flags().StringVar(&existsShop, "shop", "", "only check this shop")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Planner.SearchSimilarAndCheapest(ctx, args[0], position())
	if err != nil {
		return err
	}

	if searchXLSX != "" {
		if err := writeSearchWorkbook(searchXLSX, result); err != nil {
			return err
		}
		logger.Info().Str("file", searchXLSX).Msg("Search result exported")
		return nil
	}
	return printJSON(result)
}

func runExists(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	if existsShop != "" {
		result, err := svc.Planner.FindProductInShop(ctx, args[0], existsShop, position())
		if err != nil {
			return err
		}
		return printJSON(result)
	}

	result, err := svc.Planner.CheckProductExists(ctx, args[0], position())
	if err != nil {
		return fmt.Errorf("exists check failed: %w", err)
	}
	return printJSON(result)
}
