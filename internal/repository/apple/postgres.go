package apple

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"srebrnasad/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const appleColumns = `id::text, name, COALESCE(description, ''), price_cents, available, max_quantity_kg, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Apple, error) {
	const q = `
SELECT ` + appleColumns + `
FROM apples
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("apple repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Apple
	for rows.Next() {
		var a domain.Apple
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.PriceCents, &a.Available, &a.MaxQuantityKg, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("apple repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Apple, error) {
	const q = `
SELECT ` + appleColumns + `
FROM apples
WHERE id = $1
`
	var a domain.Apple
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.Name, &a.Description, &a.PriceCents, &a.Available, &a.MaxQuantityKg, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("apple repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) Create(ctx context.Context, a domain.Apple) (*domain.Apple, error) {
	const q = `
INSERT INTO apples (name, description, price_cents, available, max_quantity_kg)
VALUES ($1, NULLIF($2, ''), $3, $4, $5)
RETURNING ` + appleColumns + `
`
	maxKg := a.MaxQuantityKg
	if maxKg <= 0 {
		maxKg = domain.DefaultMaxQuantityKg
	}
	var out domain.Apple
	err := r.pool.QueryRow(ctx, q, a.Name, a.Description, a.PriceCents, a.Available, maxKg).
		Scan(&out.ID, &out.Name, &out.Description, &out.PriceCents, &out.Available, &out.MaxQuantityKg, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("apple repo: create name=%s error=%v", a.Name, err)
		return nil, err
	}
	r.logger.Printf("apple repo: created id=%s name=%s", out.ID, out.Name)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Apple, error) {
	const q = `
UPDATE apples
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    price_cents = COALESCE($4, price_cents),
    available = COALESCE($5, available),
    max_quantity_kg = COALESCE($6, max_quantity_kg),
    updated_at = now()
WHERE id = $1
RETURNING ` + appleColumns + `
`
	var out domain.Apple
	err := r.pool.QueryRow(ctx, q, id, in.Name, in.Description, in.PriceCents, in.Available, in.MaxQuantityKg).
		Scan(&out.ID, &out.Name, &out.Description, &out.PriceCents, &out.Available, &out.MaxQuantityKg, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("apple repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM apples WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("apple repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("apple repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, a domain.Apple) (*domain.Apple, error) {
	const q = `
INSERT INTO apples (name, description, price_cents, available, max_quantity_kg)
VALUES ($1, NULLIF($2, ''), $3, $4, $5)
ON CONFLICT (name) DO UPDATE SET
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    available = EXCLUDED.available,
    max_quantity_kg = EXCLUDED.max_quantity_kg,
    updated_at = now()
RETURNING ` + appleColumns + `
`
	maxKg := a.MaxQuantityKg
	if maxKg <= 0 {
		maxKg = domain.DefaultMaxQuantityKg
	}
	var out domain.Apple
	err := r.pool.QueryRow(ctx, q, a.Name, a.Description, a.PriceCents, a.Available, maxKg).
		Scan(&out.ID, &out.Name, &out.Description, &out.PriceCents, &out.Available, &out.MaxQuantityKg, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("apple repo: upsert name=%s error=%v", a.Name, err)
		return nil, err
	}
	return &out, nil
}
