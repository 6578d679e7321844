// Schema Generator
//
// Generates JSON Schema files from the HTTP request and response types so
// clients can validate payloads against the Go definitions.
//
// Usage:
//
//	go run ./cmd/schema-gen [-out dir]
//
// Output:
//
//	schemas/products.json
//	schemas/optimize.json
//	schemas/stores.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/spesa/search-service/internal/database"
	"github.com/spesa/search-service/internal/handlers"
	"github.com/spesa/search-service/internal/types"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

func groups() []SchemaGroup {
	return []SchemaGroup{
		{
			Name: "products",
			Types: []any{
				// Request types
				handlers.ProductExistsRequest{},
				handlers.ProductInShopRequest{},
				// Response types
				types.ProductMatch{},
				types.SearchResult{},
				types.ExistsResult{},
				types.InShopResult{},
				handlers.ErrorResponse{},
			},
			Output: "products.json",
		},
		{
			Name: "optimize",
			Types: []any{
				handlers.LowestPriceRequest{},
				types.ShoppingPlan{},
				types.ShopProduct{},
			},
			Output: "optimize.json",
		},
		{
			Name: "stores",
			Types: []any{
				database.Store{},
				database.Product{},
				handlers.HealthResponse{},
			},
			Output: "stores.json",
		},
	}
}

func main() {
	outputDir := flag.String("out", "schemas", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, group := range groups() {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(*outputDir, group.Output)
		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

// generateGroupSchema creates a combined schema with all types in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{
		DoNotReference: false,
		ExpandedStruct: false,
	}

	// Create combined definitions
	definitions := make(map[string]any)

	for _, t := range group.Types {
		schema := reflector.Reflect(t)

		// Get the type name from the schema
		typeName := ""
		if schema.Ref != "" {
			// $ref looks like "#/$defs/ShoppingPlan"
			typeName = filepath.Base(schema.Ref)
		}

		// Add all definitions from this type's schema
		for name, def := range schema.Definitions {
			definitions[name] = def
		}

		// If there's a main type, add it to definitions too
		if typeName != "" && schema.Definitions[typeName] != nil {
			definitions[typeName] = schema.Definitions[typeName]
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://spesa.dev/schemas/%s.json", group.Name),
		"title":       fmt.Sprintf("%s API Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s API types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
