package cart

import "context"

// Repository holds one line-item array per owner with whole-array
// read/replace semantics. Every mutation rewrites the full array, so
// concurrent tabs mutating the same cart can lose updates; this is
// accepted, not mitigated.
type Repository interface {
	Get(ctx context.Context, ownerID string) ([]LineItem, error)
	Replace(ctx context.Context, ownerID string, items []LineItem) error
}
