package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/modules/geometry"
)

// Kind distinguishes single-price products from attribute-driven ones.
type Kind string

const (
	KindSimple   Kind = "simple"
	KindVariable Kind = "variable"
)

// TechniqueFamily selects which per-view surcharge field applies.
type TechniqueFamily string

const (
	FamilyEmbroidery TechniqueFamily = "embroidery"
	FamilyPrint      TechniqueFamily = "print"
)

// Technique is a decoration method offered on a product (e.g. embroidery,
// DTG print, vinyl transfer).
type Technique struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Family TechniqueFamily `json:"family"`
}

// MaxViewRegions caps the editable regions per view; MaxViews caps the views
// per owning collection (defaults or one override group).
const (
	MaxViewRegions = 3
	MaxViews       = 4
)

// View is one photographed face of a product together with its editable
// regions and technique-specific surcharges. EmbroideryFee and PrintFee are
// pointers so an unset fee can fall back to the generic Surcharge.
type View struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ImageURL      string            `json:"image_url"`
	Regions       []geometry.Region `json:"regions"`
	Surcharge     float64           `json:"surcharge"`
	EmbroideryFee *float64          `json:"embroidery_fee,omitempty"`
	PrintFee      *float64          `json:"print_fee,omitempty"`
}

// ViewOverrideGroup is the view set that replaces the defaults when a given
// grouping-attribute value is selected. An empty list means "no override".
type ViewOverrideGroup struct {
	Views []View `json:"views"`
}

// AttributeOption is one selectable value of an attribute. Color options
// carry a hex swatch; size options only a name.
type AttributeOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

// AttributeDefinition is a named, ordered list of options (Color, Size, ...).
type AttributeDefinition struct {
	Name    string            `json:"name"`
	Options []AttributeOption `json:"options"`
}

// Variation is a priced combination of attribute values. Its ID is derived
// deterministically from the sorted attribute-value pairs it represents, so
// a manually edited price survives attribute-set edits that keep the same
// combination alive.
type Variation struct {
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes"`
	Price      float64           `json:"price"`
	SalePrice  *float64          `json:"sale_price,omitempty"`
}

// Definition is the full merchant-authored customizable product: base
// pricing, techniques, attributes, priced variations, the default view list
// (1–4 entries) and per-grouping-value view overrides.
type Definition struct {
	ID                uuid.UUID                    `json:"id"`
	OwnerID           uuid.UUID                    `json:"owner_id"`
	Name              string                       `json:"name"`
	Kind              Kind                         `json:"kind"`
	BasePrice         float64                      `json:"base_price"`
	SalePrice         *float64                     `json:"sale_price,omitempty"`
	Techniques        []Technique                  `json:"techniques"`
	Attributes        []AttributeDefinition        `json:"attributes"`
	Variations        []Variation                  `json:"variations"`
	GroupingAttribute string                       `json:"grouping_attribute,omitempty"`
	ViewOverrides     map[string]ViewOverrideGroup `json:"view_overrides,omitempty"`
	Views             []View                       `json:"views"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
}

// UnitPrice returns the effective base price, preferring an active sale price.
func (d *Definition) UnitPrice() float64 {
	if d.SalePrice != nil {
		return *d.SalePrice
	}
	return d.BasePrice
}

// TechniqueByID returns the technique with the given id, or nil.
func (d *Definition) TechniqueByID(id string) *Technique {
	for i := range d.Techniques {
		if d.Techniques[i].ID == id {
			return &d.Techniques[i]
		}
	}
	return nil
}

// SelectionState is a shopper or editor session's current choice of
// attribute values, technique and active view.
type SelectionState struct {
	Attributes   map[string]string `json:"attributes"`
	TechniqueID  string            `json:"technique_id"`
	ActiveViewID string            `json:"active_view_id"`
}
