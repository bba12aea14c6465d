package auth

import (
	"context"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/merchant"
)

func signingKey() []byte {
	if key := os.Getenv("JWT_SECRET"); key != "" {
		return []byte(key)
	}
	return []byte("dev-secret")
}

type service struct {
	merchantRepo merchant.Repository
}

// NewService creates a new auth service.
func NewService(merchantRepo merchant.Repository) Service {
	return &service{merchantRepo: merchantRepo}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	m, err := s.merchantRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperr.Permission("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Permission("invalid credentials")
	}

	claims := &jwt.StandardClaims{
		Subject:   m.ID.String(),
		ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}
