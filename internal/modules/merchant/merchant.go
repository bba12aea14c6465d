package merchant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Merchant is a store owner who authors customizable products.
type Merchant struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	StoreName    string    `json:"store_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository defines the interface for merchant account storage.
type Repository interface {
	Create(ctx context.Context, m *Merchant) error
	GetByEmail(ctx context.Context, email string) (*Merchant, error)
	GetByID(ctx context.Context, id string) (*Merchant, error)
}

// Service defines the interface for merchant account business logic.
type Service interface {
	Register(ctx context.Context, email, password, storeName string) (*Merchant, error)
	Get(ctx context.Context, id string) (*Merchant, error)
}
