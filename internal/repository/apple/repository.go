package apple

import (
	"context"

	"srebrnasad/internal/domain"
)

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name          *string
	Description   *string
	PriceCents    *int64
	Available     *bool
	MaxQuantityKg *int
}

type Repository interface {
	List(ctx context.Context) ([]domain.Apple, error)
	GetByID(ctx context.Context, id string) (*domain.Apple, error)
	Create(ctx context.Context, a domain.Apple) (*domain.Apple, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Apple, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, a domain.Apple) (*domain.Apple, error)
}
