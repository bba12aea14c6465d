package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariationID(t *testing.T) {
	id := VariationID(map[string]string{"Size": "L", "Color": "Navy Blue"})
	assert.Equal(t, "color-navy-blue-size-l", id)

	// Key order in the map must not matter.
	again := VariationID(map[string]string{"Color": "Navy Blue", "Size": "L"})
	assert.Equal(t, id, again)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "navy-blue", slugify("  Navy  Blue! "))
	assert.Equal(t, "xl", slugify("XL"))
	assert.Equal(t, "2xl", slugify("2XL"))
}

func testDefinition() *Definition {
	return &Definition{
		Kind:      KindVariable,
		BasePrice: 19.99,
		Attributes: []AttributeDefinition{
			{Name: "Color", Options: []AttributeOption{
				{Name: "Red", Hex: "#ff0000"},
				{Name: "Blue", Hex: "#0000ff"},
			}},
			{Name: "Size", Options: []AttributeOption{{Name: "S"}, {Name: "L"}}},
		},
	}
}

func TestRegenerateVariationsFromScratch(t *testing.T) {
	def := testDefinition()
	RegenerateVariations(def)

	require.Len(t, def.Variations, 4)
	ids := make([]string, len(def.Variations))
	for i, v := range def.Variations {
		ids[i] = v.ID
		assert.Equal(t, 19.99, v.Price)
		assert.Nil(t, v.SalePrice)
	}
	assert.Equal(t, []string{
		"color-red-size-s", "color-red-size-l",
		"color-blue-size-s", "color-blue-size-l",
	}, ids)
}

func TestRegenerateVariationsPreservesEditedPrices(t *testing.T) {
	def := testDefinition()
	RegenerateVariations(def)

	// Merchant hand-edits one price, then adds a size option.
	sale := 17.50
	for i := range def.Variations {
		if def.Variations[i].ID == "color-blue-size-l" {
			def.Variations[i].Price = 24.99
			def.Variations[i].SalePrice = &sale
		}
	}
	def.Attributes[1].Options = append(def.Attributes[1].Options, AttributeOption{Name: "XL"})
	RegenerateVariations(def)

	require.Len(t, def.Variations, 6)
	byID := make(map[string]Variation)
	for _, v := range def.Variations {
		byID[v.ID] = v
	}

	kept := byID["color-blue-size-l"]
	assert.Equal(t, 24.99, kept.Price)
	require.NotNil(t, kept.SalePrice)
	assert.Equal(t, 17.50, *kept.SalePrice)

	fresh := byID["color-red-size-xl"]
	assert.Equal(t, 19.99, fresh.Price)
	assert.Nil(t, fresh.SalePrice)
}

func TestRegenerateVariationsDropsOrphans(t *testing.T) {
	def := testDefinition()
	RegenerateVariations(def)

	// Removing the Blue option drops every blue combination.
	def.Attributes[0].Options = def.Attributes[0].Options[:1]
	RegenerateVariations(def)

	require.Len(t, def.Variations, 2)
	for _, v := range def.Variations {
		assert.Equal(t, "Red", v.Attributes["Color"])
	}
}

func TestRegenerateVariationsNoAttributes(t *testing.T) {
	def := &Definition{Kind: KindSimple, BasePrice: 10}
	RegenerateVariations(def)
	assert.Empty(t, def.Variations)
}
