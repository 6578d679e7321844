// Package export writes shopping plans as Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spesa/search-service/internal/types"
)

const (
	SheetPlan     = "Piano"
	SheetMissing  = "Mancanti"
	SheetSimilar  = "Simili"
	SheetCheapest = "Economici"
)

var planHeader = []any{"Negozio", "Prodotto", "Descrizione", "Prezzo", "Sconto", "Distanza (km)"}

// WritePlans writes plans to w as an .xlsx workbook. Every product gets one
// row on the plan sheet, followed by a total row per plan. Unstocked items
// go to a separate sheet.
func WritePlans(w io.Writer, plans []types.ShoppingPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlan); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetMissing); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	if err := writeRow(f, SheetPlan, row, planHeader, bold); err != nil {
		return err
	}

	missingRow := 1
	if err := writeRow(f, SheetMissing, missingRow, []any{"Negozio", "Prodotto"}, bold); err != nil {
		return err
	}

	for _, plan := range plans {
		for _, p := range plan.Products {
			row++
			var discount any
			if p.Discount != nil {
				discount = *p.Discount
			}
			values := []any{p.Shop, p.Name, p.Description, p.Price, discount, p.Distance}
			if err := writeRow(f, SheetPlan, row, values, 0); err != nil {
				return err
			}
		}

		row++
		if err := writeRow(f, SheetPlan, row, []any{plan.Shop, "Totale", nil, plan.TotalPrice}, bold); err != nil {
			return err
		}

		for _, item := range plan.Missing {
			missingRow++
			if err := writeRow(f, SheetMissing, missingRow, []any{plan.Shop, item}, 0); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(SheetPlan, "A", "C", 28); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

var matchHeader = []any{"ID", "Negozio", "Prodotto", "Descrizione", "Prezzo", "Sconto", "Distanza (km)"}

// WriteSearch writes a search result to w as an .xlsx workbook with one sheet
// per hit list.
func WriteSearch(w io.Writer, result *types.SearchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSimilar); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetCheapest); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	var similar, cheapest []types.ProductMatch
	if result != nil {
		similar, cheapest = result.MostSimilar, result.LowestPrice
	}

	for sheet, matches := range map[string][]types.ProductMatch{SheetSimilar: similar, SheetCheapest: cheapest} {
		if err := writeRow(f, sheet, 1, matchHeader, bold); err != nil {
			return err
		}
		for i, m := range matches {
			var discount, distance any
			if m.Discount != nil {
				discount = *m.Discount
			}
			if m.Distance != nil {
				distance = *m.Distance
			}
			values := []any{m.ID, m.StoreID(), m.Name, m.Description, m.Price, discount, distance}
			if err := writeRow(f, sheet, i+2, values, 0); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	if style == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}
