package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGroupSchemas(t *testing.T) {
	want := map[string][]string{
		"products": {"ProductExistsRequest", "SearchResult", "ProductMatch", "Localization", "Position"},
		"optimize": {"LowestPriceRequest", "ShoppingPlan", "ShopProduct"},
		"stores":   {"Store", "Product", "HealthResponse"},
	}

	for _, group := range groups() {
		t.Run(group.Name, func(t *testing.T) {
			schema := generateGroupSchema(group)
			defs, ok := schema["$defs"].(map[string]any)
			require.True(t, ok)
			for _, name := range want[group.Name] {
				assert.Contains(t, defs, name)
			}
		})
	}
}

func TestWriteSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "optimize.json")
	require.NoError(t, writeSchema(generateGroupSchema(groups()[1]), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "https://spesa.dev/schemas/optimize.json", parsed["$id"])
	assert.Equal(t, "Optimize API Types", parsed["title"])
}
