// Package seed loads the default variety catalog for a fresh database.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type varietySeed struct {
	Name        string
	Description string
	PriceCents  int64
}

// Apply inserts the orchard's standard varieties. It is idempotent via
// ON CONFLICT on the variety name.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	varieties := []varietySeed{
		{Name: "Gala", Description: "Słodkie i soczyste", PriceCents: 450},
		{Name: "Jonagold", Description: "Mieszanka słodkości i kwaskowatości", PriceCents: 500},
		{Name: "Fuji", Description: "Słodkie z nutą kardamonu", PriceCents: 550},
	}

	for _, v := range varieties {
		if err := upsertVariety(ctx, pool, v); err != nil {
			return fmt.Errorf("upsert variety %s: %w", v.Name, err)
		}
	}
	return nil
}

func upsertVariety(ctx context.Context, pool *pgxpool.Pool, v varietySeed) error {
	const q = `
INSERT INTO apples (name, description, price_cents, available)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, v.Name, v.Description, v.PriceCents)
	return err
}
