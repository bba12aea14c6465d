package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a normalized product document imported from an upstream catalog
// backend. Whatever platform it came from, it must already be reduced to
// this shape before reaching the resolution engine.
type Entry struct {
	ID              uuid.UUID         `json:"id"`
	ProductID       uuid.UUID         `json:"product_id"`
	Source          string            `json:"source"`
	ExternalID      string            `json:"external_id,omitempty"`
	VariationImages map[string]string `json:"variation_images,omitempty"` // variation id -> image URL
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
