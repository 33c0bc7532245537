package order

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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (
    id, packaging, customer_name, customer_email, customer_phone,
    pickup_date, pickup_time,
    delivery_address, delivery_lat, delivery_lon, delivery_distance_km,
    status, total_quantity_kg,
    fruit_subtotal_cents, packaging_cents, delivery_fee_cents, grand_total_cents
)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING created_at, updated_at
`
	var pickupDate, pickupTime *string
	if o.Pickup != nil {
		pickupDate = &o.Pickup.Date
		pickupTime = &o.Pickup.Time
	}
	var deliveryAddress *string
	var deliveryLat, deliveryLon, deliveryDistance *float64
	if o.Delivery != nil {
		deliveryAddress = &o.Delivery.Address
		deliveryLat = &o.Delivery.Lat
		deliveryLon = &o.Delivery.Lon
		deliveryDistance = &o.Delivery.DistanceKm
	}

	err = tx.QueryRow(ctx, orderQ,
		o.ID, string(o.Packaging), o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		pickupDate, pickupTime,
		deliveryAddress, deliveryLat, deliveryLon, deliveryDistance,
		o.Status, o.TotalQuantityKg,
		o.FruitSubtotalCents, o.PackagingCents, o.DeliveryFeeCents, o.GrandTotalCents,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		r.logger.Printf("order repo: create id=%s error=%v", o.ID, err)
		return nil, err
	}

	const lineQ = `
INSERT INTO order_lines (order_id, apple_id, apple_name, quantity_kg, unit_price_cents, total_cents)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	for i := range o.Lines {
		line := &o.Lines[i]
		line.OrderID = o.ID
		if err := tx.QueryRow(ctx, lineQ,
			o.ID, line.AppleID, line.AppleName, line.QuantityKg, line.UnitPriceCents, line.TotalCents,
		).Scan(&line.ID, &line.CreatedAt); err != nil {
			r.logger.Printf("order repo: create line order_id=%s apple_id=%s error=%v", o.ID, line.AppleID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s lines=%d total_cents=%d", o.ID, len(o.Lines), o.GrandTotalCents)
	return &o, nil
}

const orderColumns = `
    id::text, packaging, customer_name, COALESCE(customer_email, ''), customer_phone,
    pickup_date, pickup_time,
    delivery_address, delivery_lat, delivery_lon, delivery_distance_km, delivery_fee_cents,
    status, total_quantity_kg,
    fruit_subtotal_cents, packaging_cents, delivery_fee_cents, grand_total_cents,
    created_at, updated_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT` + orderColumns + `
FROM orders
WHERE id = $1
`
	o, err := r.scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	if err := r.attachLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Order, int, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}

	const q = `
SELECT` + orderColumns + `
FROM orders
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
OFFSET $2 LIMIT $3
`
	rows, err := r.pool.Query(ctx, q, f.Status, skip, limit)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range result {
		if err := r.attachLines(ctx, &result[i]); err != nil {
			return nil, 0, err
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE ($1 = '' OR status = $1)`, f.Status).Scan(&total); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $2,
    updated_at = now()
WHERE id = $1
RETURNING id::text
`
	var updatedID string
	if err := r.pool.QueryRow(ctx, q, id, status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("order repo: status id=%s -> %s", id, status)
	return r.GetByID(ctx, updatedID)
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var packaging string
	var pickupDate, pickupTime *string
	var deliveryAddress *string
	var deliveryLat, deliveryLon, deliveryDistance *float64
	var deliveryFee int64

	err := row.Scan(
		&o.ID, &packaging, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&pickupDate, &pickupTime,
		&deliveryAddress, &deliveryLat, &deliveryLon, &deliveryDistance, &deliveryFee,
		&o.Status, &o.TotalQuantityKg,
		&o.FruitSubtotalCents, &o.PackagingCents, &o.DeliveryFeeCents, &o.GrandTotalCents,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Packaging = domain.Packaging(packaging)
	if pickupDate != nil && pickupTime != nil {
		o.Pickup = &domain.Pickup{Date: *pickupDate, Time: *pickupTime}
	}
	if deliveryAddress != nil {
		d := &domain.Delivery{Address: *deliveryAddress, FeeCents: deliveryFee}
		if deliveryLat != nil {
			d.Lat = *deliveryLat
		}
		if deliveryLon != nil {
			d.Lon = *deliveryLon
		}
		if deliveryDistance != nil {
			d.DistanceKm = *deliveryDistance
		}
		o.Delivery = d
	}
	return &o, nil
}

func (r *postgresRepo) attachLines(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT id::text, order_id::text, apple_id::text, apple_name, quantity_kg, unit_price_cents, total_cents, created_at
FROM order_lines
WHERE order_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, q, o.ID)
	if err != nil {
		r.logger.Printf("order repo: lines order_id=%s error=%v", o.ID, err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.AppleID, &line.AppleName, &line.QuantityKg, &line.UnitPriceCents, &line.TotalCents, &line.CreatedAt); err != nil {
			return err
		}
		o.Lines = append(o.Lines, line)
	}
	return rows.Err()
}
