package contact

import (
	"context"

	"srebrnasad/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, m domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
}
