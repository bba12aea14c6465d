package catalog

import "context"

// Repository defines the interface for catalog entry storage.
type Repository interface {
	Upsert(ctx context.Context, e *Entry) error
	GetByProductID(ctx context.Context, productID string) (*Entry, error)
}
