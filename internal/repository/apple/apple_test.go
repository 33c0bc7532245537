package apple

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"srebrnasad/internal/domain"
	"srebrnasad/internal/migrate"
)

func TestPostgres_CRUD(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, domain.Apple{
		Name:        "Gala",
		Description: "Sweet and juicy",
		PriceCents:  450,
		Available:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if created.MaxQuantityKg != domain.DefaultMaxQuantityKg {
		t.Fatalf("expected default max quantity, got %d", created.MaxQuantityKg)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Gala" {
		t.Fatalf("unexpected list %+v", list)
	}

	newPrice := int64(500)
	unavailable := false
	updated, err := repo.Update(ctx, created.ID, UpdateInput{PriceCents: &newPrice, Available: &unavailable})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PriceCents != 500 || updated.Available {
		t.Fatalf("unexpected updated apple %+v", updated)
	}
	if updated.Name != "Gala" {
		t.Fatalf("partial update must not touch name, got %q", updated.Name)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}

func TestPostgres_UpsertByName(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	first, err := repo.Upsert(ctx, domain.Apple{Name: "Jonagold", PriceCents: 500, Available: true})
	if err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	second, err := repo.Upsert(ctx, domain.Apple{Name: "Jonagold", Description: "Sweet-tart", PriceCents: 550, Available: true})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same ID after upsert")
	}
	if second.PriceCents != 550 || second.Description != "Sweet-tart" {
		t.Fatalf("unexpected upserted apple %+v", second)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_lines, orders, apples, contact_messages RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
