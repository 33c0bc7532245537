package order

import (
	"context"

	"srebrnasad/internal/domain"
)

// ListFilter narrows and pages the admin order listing.
type ListFilter struct {
	Status string
	Skip   int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f ListFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}
