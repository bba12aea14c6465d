package resolve

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavonga/decora-backend/internal/modules/geometry"
	"github.com/tavonga/decora-backend/internal/modules/product"
)

func testDefinition() *product.Definition {
	sale := 21.00
	return &product.Definition{
		ID:        uuid.New(),
		Name:      "Hoodie",
		Kind:      product.KindVariable,
		BasePrice: 19.99,
		Techniques: []product.Technique{
			{ID: "print", Name: "Print", Family: product.FamilyPrint},
			{ID: "embroidery", Name: "Embroidery", Family: product.FamilyEmbroidery},
		},
		Variations: []product.Variation{
			{ID: "color-red-size-s", Attributes: map[string]string{"Color": "Red", "Size": "S"}, Price: 22.99},
			{ID: "color-red-size-l", Attributes: map[string]string{"Color": "Red", "Size": "L"}, Price: 24.99, SalePrice: &sale},
			{ID: "color-blue-size-s", Attributes: map[string]string{"Color": "Blue", "Size": "S"}, Price: 22.99},
		},
		GroupingAttribute: "Color",
		ViewOverrides: map[string]product.ViewOverrideGroup{
			"Blue": {Views: []product.View{
				{ID: "blue-front", Name: "Front", ImageURL: "https://img/blue-front.png"},
			}},
			"Red": {}, // present but empty: no override
		},
		Views: []product.View{
			{
				ID:       "front",
				Name:     "Front",
				ImageURL: "https://img/front.png",
				Regions: []geometry.Region{
					{ID: uuid.New(), Name: "Chest", X: 25, Y: 25, Width: 50, Height: 30},
				},
			},
			{ID: "back", Name: "Back", ImageURL: "https://img/back.png"},
		},
	}
}

func TestMatchVariationFirstInOrderWins(t *testing.T) {
	def := testDefinition()

	// Full selection: exact combination.
	v := MatchVariation(def, map[string]string{"Color": "Red", "Size": "L"})
	require.NotNil(t, v)
	assert.Equal(t, "color-red-size-l", v.ID)

	// Partial selection: several variations qualify, the first in
	// definition order wins.
	v = MatchVariation(def, map[string]string{"Color": "Red"})
	require.NotNil(t, v)
	assert.Equal(t, "color-red-size-s", v.ID)

	// No match at all.
	assert.Nil(t, MatchVariation(def, map[string]string{"Color": "Green"}))
}

func TestResolveUnitPrice(t *testing.T) {
	def := testDefinition()

	// Matching variation with a sale price.
	res := Resolve(def, product.SelectionState{Attributes: map[string]string{"Color": "Red", "Size": "L"}}, "")
	assert.Equal(t, 21.00, res.UnitPrice)

	// No matching variation: base price wins.
	res = Resolve(def, product.SelectionState{Attributes: map[string]string{"Color": "Green"}}, "")
	assert.Equal(t, 19.99, res.UnitPrice)
	assert.Empty(t, res.VariationID)
}

func TestResolveViewsOverrideGroupWins(t *testing.T) {
	def := testDefinition()
	res := Resolve(def, product.SelectionState{Attributes: map[string]string{"Color": "Blue", "Size": "S"}}, "https://img/catalog.png")

	// Priority 1: the Blue override replaces defaults even though a
	// variation image exists.
	require.Len(t, res.Views, 1)
	assert.Equal(t, "blue-front", res.Views[0].ID)
	assert.Equal(t, "blue-front", res.ActiveViewID)
}

func TestResolveViewsEmptyOverrideFallsThrough(t *testing.T) {
	def := testDefinition()
	res := Resolve(def, product.SelectionState{Attributes: map[string]string{"Color": "Red", "Size": "S"}}, "")

	// The Red override group is empty, so the defaults win.
	require.Len(t, res.Views, 2)
	assert.Equal(t, "front", res.Views[0].ID)
}

func TestResolveViewsSynthesizedFromVariationImage(t *testing.T) {
	def := testDefinition()
	res := Resolve(def, product.SelectionState{Attributes: map[string]string{"Color": "Red", "Size": "S"}}, "https://img/red-s.png")

	require.Len(t, res.Views, 1)
	v := res.Views[0]
	assert.Equal(t, "variation-color-red-size-s", v.ID)
	assert.Equal(t, "https://img/red-s.png", v.ImageURL)
	// Region geometry inherited from the first default view.
	require.Len(t, v.Regions, 1)
	assert.Equal(t, def.Views[0].Regions[0], v.Regions[0])

	// The transient substitution must not leak into the definition.
	assert.Equal(t, "https://img/front.png", def.Views[0].ImageURL)
}

func TestResolveActiveViewFallback(t *testing.T) {
	def := testDefinition()

	// Active view survives when still present.
	res := Resolve(def, product.SelectionState{
		Attributes:   map[string]string{"Color": "Red", "Size": "S"},
		ActiveViewID: "back",
	}, "")
	assert.Equal(t, "back", res.ActiveViewID)

	// Switching to Blue swaps the view set; "back" is gone, so the active
	// view falls back to the new set's first entry.
	res = Resolve(def, product.SelectionState{
		Attributes:   map[string]string{"Color": "Blue", "Size": "S"},
		ActiveViewID: "back",
	}, "")
	assert.Equal(t, "blue-front", res.ActiveViewID)
}

func TestResolveIsIdempotent(t *testing.T) {
	def := testDefinition()
	sel := product.SelectionState{
		Attributes:   map[string]string{"Color": "Red", "Size": "S"},
		TechniqueID:  "print",
		ActiveViewID: "front",
	}

	first := Resolve(def, sel, "https://img/red-s.png")
	second := Resolve(def, sel, "https://img/red-s.png")
	assert.Equal(t, first, second)
}
