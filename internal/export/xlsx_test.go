package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spesa/search-service/internal/types"
)

func TestWritePlans(t *testing.T) {
	discount := 0.2
	plans := []types.ShoppingPlan{{
		Shop:       "conad",
		TotalPrice: 3.2,
		Products: []types.ShopProduct{
			{Shop: "conad", Name: "latte", Price: 1.2, Discount: &discount, Distance: 1.5},
			{Shop: "conad", Name: "pane", Price: 2.0, Distance: 1.5},
		},
		Missing: []string{"uova"},
	}}

	var buf bytes.Buffer
	require.NoError(t, WritePlans(&buf, plans))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPlan, SheetMissing}, f.GetSheetList())

	rows, err := f.GetRows(SheetPlan)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Negozio", rows[0][0])
	assert.Equal(t, "latte", rows[1][1])
	assert.Equal(t, "0.2", rows[1][4])
	assert.Equal(t, "Totale", rows[3][1])
	assert.Equal(t, "3.2", rows[3][3])

	missing, err := f.GetRows(SheetMissing)
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, []string{"conad", "uova"}, missing[1])
}

func TestWritePlansEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlans(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetPlan)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteSearch(t *testing.T) {
	distance := 2.5
	result := &types.SearchResult{
		MostSimilar: []types.ProductMatch{
			{ID: "a1", Name: "latte intero", Price: 1.2, Localization: types.Localization{Grocery: "conad"}, Distance: &distance},
			{ID: "a2", Name: "latte scremato", Price: 1.1, Localization: types.Localization{Grocery: "coop"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSearch(&buf, result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	similar, err := f.GetRows(SheetSimilar)
	require.NoError(t, err)
	require.Len(t, similar, 3)
	assert.Equal(t, []string{"a1", "conad", "latte intero", "", "1.2", "", "2.5"}, similar[1])

	cheapest, err := f.GetRows(SheetCheapest)
	require.NoError(t, err)
	assert.Len(t, cheapest, 1)
}
