// Package contact accepts and lists messages from the storefront contact form.
package contact

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"srebrnasad/internal/domain"
	contactrepo "srebrnasad/internal/repository/contact"
)

type Service struct {
	repo messageRepo
}

type messageRepo interface {
	Create(ctx context.Context, m domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

func New(repo contactrepo.Repository) *Service {
	return &Service{repo: repo}
}

type SubmitInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	message := strings.TrimSpace(in.Message)

	if name == "" {
		return nil, errors.New("name required")
	}
	if email == "" && phone == "" {
		return nil, errors.New("email or phone required")
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, errors.New("email looks invalid")
	}
	if message == "" {
		return nil, errors.New("message required")
	}

	return s.repo.Create(ctx, domain.ContactMessage{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.List(ctx)
}
