package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog reads the store and product catalog.
type Catalog struct {
	pool *pgxpool.Pool
}

// NewCatalog creates a catalog over pool.
func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

// Ping checks the catalog database is reachable.
func (c *Catalog) Ping(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("database not initialized")
	}
	return c.pool.Ping(ctx)
}

// ListStores returns every store.
func (c *Catalog) ListStores(ctx context.Context) ([]Store, error) {
	if c.pool == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT id, grocery, lat, lng, street, city, zip_code, working_hours, picks_up_in_store
		FROM "Localization"
		ORDER BY id
	`
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying stores: %w", err)
	}

	stores, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Store, error) {
		var s Store
		err := row.Scan(
			&s.ID, &s.Grocery, &s.Lat, &s.Lng, &s.Street, &s.City,
			&s.ZipCode, &s.WorkingHours, &s.PicksUpInStore,
		)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning stores: %w", err)
	}
	return stores, nil
}

// ProductsByStore returns the products listed by the store with the given id.
// An unknown store yields an empty list.
func (c *Catalog) ProductsByStore(ctx context.Context, storeID int32) ([]Product, error) {
	if c.pool == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT p.id, p.name, p.description, p.current_price, p.discount, p.price_for_kg, p.image_url
		FROM "Product" p
		WHERE p."localizationId" = $1
		ORDER BY p.id
	`
	rows, err := c.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("error querying products for store %d: %w", storeID, err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Product, error) {
		var p Product
		err := row.Scan(
			&p.ID, &p.Name, &p.Description, &p.CurrentPrice, &p.Discount, &p.PriceForKg, &p.ImageURL,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning products for store %d: %w", storeID, err)
	}
	return products, nil
}
