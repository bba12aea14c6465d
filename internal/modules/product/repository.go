package product

import "context"

// Repository defines the interface for definition document storage.
type Repository interface {
	Create(ctx context.Context, def *Definition) error
	GetByID(ctx context.Context, id string) (*Definition, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Definition, error)
	Update(ctx context.Context, def *Definition) error
	Delete(ctx context.Context, id string) error
}
