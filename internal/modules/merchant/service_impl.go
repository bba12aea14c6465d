package merchant

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tavonga/decora-backend/internal/apperr"
)

type service struct {
	repo Repository
}

// NewService creates a new merchant service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password, storeName string) (*Merchant, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	m := &Merchant{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
		StoreName:    storeName,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apperr.Persistence(err, "failed to create merchant")
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, id string) (*Merchant, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("merchant %s not found", id)
	}
	return m, nil
}
