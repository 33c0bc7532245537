// Package catalog manages the apple variety inventory shown on the
// storefront and edited from the admin panel.
package catalog

import (
	"context"
	"errors"
	"strings"

	"srebrnasad/internal/domain"
	applerepo "srebrnasad/internal/repository/apple"
)

type Service struct {
	repo appleRepo
}

type appleRepo interface {
	List(ctx context.Context) ([]domain.Apple, error)
	GetByID(ctx context.Context, id string) (*domain.Apple, error)
	Create(ctx context.Context, a domain.Apple) (*domain.Apple, error)
	Update(ctx context.Context, id string, in applerepo.UpdateInput) (*domain.Apple, error)
	Delete(ctx context.Context, id string) error
}

func New(repo applerepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"priceCents"`
	Available     *bool  `json:"available"`
	MaxQuantityKg int    `json:"maxQuantityKg"`
}

type UpdateInput struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	PriceCents    *int64  `json:"priceCents"`
	Available     *bool   `json:"available"`
	MaxQuantityKg *int    `json:"maxQuantityKg"`
}

// List returns every variety, including unavailable ones, sorted by name.
// Unavailable varieties are shown but cannot be ordered.
func (s *Service) List(ctx context.Context) ([]domain.Apple, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Apple, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Apple, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	if in.PriceCents <= 0 {
		return nil, errors.New("price must be positive")
	}
	if in.MaxQuantityKg < 0 {
		return nil, errors.New("max quantity must not be negative")
	}

	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return s.repo.Create(ctx, domain.Apple{
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		PriceCents:    in.PriceCents,
		Available:     available,
		MaxQuantityKg: in.MaxQuantityKg,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Apple, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return nil, errors.New("name must not be blank")
		}
		in.Name = &trimmed
	}
	if in.PriceCents != nil && *in.PriceCents <= 0 {
		return nil, errors.New("price must be positive")
	}
	if in.MaxQuantityKg != nil && *in.MaxQuantityKg <= 0 {
		return nil, errors.New("max quantity must be positive")
	}
	return s.repo.Update(ctx, id, applerepo.UpdateInput{
		Name:          in.Name,
		Description:   in.Description,
		PriceCents:    in.PriceCents,
		Available:     in.Available,
		MaxQuantityKg: in.MaxQuantityKg,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
