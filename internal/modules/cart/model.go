package cart

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Element is the structural snapshot of one placed design element. Inline
// holds the raw binary payload (base64 image data) while the element lives
// on the stage; persistence strips it and keeps only AssetID, the
// back-reference to the uploaded original.
type Element struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"` // image | text | shape
	AssetID string          `json:"asset_id,omitempty"`
	Inline  []byte          `json:"inline,omitempty"`
	Props   json.RawMessage `json:"props,omitempty"`
}

// ViewSnapshot records what one view looked like at add-to-cart time: a
// rendered preview (a blob store URL, or the raw image when the upload
// failed) plus the stripped element list.
type ViewSnapshot struct {
	ViewID        string    `json:"view_id"`
	PreviewURL    string    `json:"preview_url,omitempty"`
	PreviewInline []byte    `json:"preview_inline,omitempty"`
	Elements      []Element `json:"elements"`
}

// LineItem is the persistence-ready cart entry. Created once at add-to-cart
// and immutable afterwards; editing it re-enters the whole resolution
// pipeline.
type LineItem struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"product_id"`
	VariationID string            `json:"variation_id,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	TechniqueID string            `json:"technique_id,omitempty"`
	Quantity    int               `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	Views       []ViewSnapshot    `json:"views"`
	CreatedAt   time.Time         `json:"created_at"`
}
