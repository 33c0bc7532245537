package contact

import (
	"context"
	"io"
	"log"

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

func (r *postgresRepo) Create(ctx context.Context, m domain.ContactMessage) (*domain.ContactMessage, error) {
	const q = `
INSERT INTO contact_messages (id, name, email, phone, message, status)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, 'received')
RETURNING status, created_at
`
	if err := r.pool.QueryRow(ctx, q, m.ID, m.Name, m.Email, m.Phone, m.Message).Scan(&m.Status, &m.CreatedAt); err != nil {
		r.logger.Printf("contact repo: create error=%v", err)
		return nil, err
	}
	r.logger.Printf("contact repo: created id=%s", m.ID)
	return &m, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	const q = `
SELECT id::text, name, email, COALESCE(phone, ''), message, status, created_at
FROM contact_messages
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("contact repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
