package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spesa/search-service/internal/export"
	"github.com/spesa/search-service/internal/listfile"
	"github.com/spesa/search-service/internal/planner"
	"github.com/spesa/search-service/internal/types"
)

var (
	planList     string
	planEncoding string
	planMode     string
	planXLSX     string
	planJSON     bool
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [item...]",
	Short: "Pick the cheapest store for a shopping list",
	Long: `Pick the store that covers a shopping list at the lowest total price.
In risparmio mode the list may be split over two stores when that is cheaper.

Items are given as arguments or read from a list file (one item per line, or
the first column of an .xlsx workbook).`,
	Example: `  search-service plan latte pane uova
  search-service plan --list spesa.txt --mode risparmio
  search-service plan --list spesa.txt --encoding windows-1252 --xlsx piano.xlsx`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	addPositionFlags(planCmd)
	planCmd.Flags().StringVar(&planList, "list", "", "shopping list file (.txt or .xlsx)")
	planCmd.Flags().StringVar(&planEncoding, "encoding", "", "text list encoding (utf-8, windows-1252, iso-8859-1, iso-8859-15; default auto)")
	planCmd.Flags().StringVar(&planMode, "mode", "", "comodita (one store) or risparmio (up to two stores)")
	planCmd.Flags().StringVar(&planXLSX, "xlsx", "", "write the plan to an Excel workbook")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the plan as JSON")
}

func runPlan(cmd *cobra.Command, args []string) error {
	items := args
	if planList != "" {
		fromFile, err := listfile.Load(planList, listfile.Encoding(planEncoding))
		if err != nil {
			return fmt.Errorf("failed to read shopping list: %w", err)
		}
		items = append(items, fromFile...)
	}
	if len(items) == 0 {
		return fmt.Errorf("either pass items or use --list")
	}

	ctx := cmd.Context()
	svc, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Planner.FindLowestPrice(ctx, items, position(), planMode)
	if err != nil {
		return err
	}
	plans := planner.Plans(result)

	if planXLSX != "" {
		if err := writePlanWorkbook(planXLSX, plans); err != nil {
			return err
		}
		logger.Info().Str("file", planXLSX).Msg("Plan exported")
	}

	if planJSON {
		return printJSON(plans)
	}
	return printPlans(plans)
}

func printPlans(plans []types.ShoppingPlan) error {
	if len(plans) == 0 {
		fmt.Println("No store nearby stocks any item of the list")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, plan := range plans {
		fmt.Fprintf(w, "SHOP\tPRODUCT\tPRICE\tDISTANCE\n")
		for _, p := range plan.Products {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%.1f km\n", p.Shop, p.Name, p.Price, p.Distance)
		}
		fmt.Fprintf(w, "%s\tTOTAL\t%.2f\t\n", plan.Shop, plan.TotalPrice)
		for _, item := range plan.Missing {
			fmt.Fprintf(w, "-\t%s\tmissing\t\n", item)
		}
	}
	return w.Flush()
}

func writePlanWorkbook(path string, plans []types.ShoppingPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WritePlans(f, plans); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSearchWorkbook(path string, result *types.SearchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteSearch(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
