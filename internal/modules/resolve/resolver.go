package resolve

import (
	"github.com/tavonga/decora-backend/internal/modules/geometry"
	"github.com/tavonga/decora-backend/internal/modules/product"
)

// Resolution is the deterministic output of resolving a definition against a
// selection: the winning unit price, the active view set and the view the
// stage should display. Resolving twice with identical inputs yields an
// identical Resolution.
type Resolution struct {
	UnitPrice    float64        `json:"unit_price"`
	VariationID  string         `json:"variation_id,omitempty"`
	Views        []product.View `json:"views"`
	ActiveViewID string         `json:"active_view_id,omitempty"`
}

// MatchVariation returns the first variation in definition order whose
// recorded value equals the selected value for every attribute present in
// the selection. Attributes absent from the selection are not checked, so a
// partial selection can match several variations; the first in definition
// order wins. Intended tie-break semantics for incomplete selections are an
// open product question, so this keeps the observed first-wins policy
// instead of inventing one.
func MatchVariation(def *product.Definition, selected map[string]string) *product.Variation {
	for i := range def.Variations {
		v := &def.Variations[i]
		matched := true
		for name, want := range selected {
			if v.Attributes[name] != want {
				matched = false
				break
			}
		}
		if matched {
			return v
		}
	}
	return nil
}

// ResolveViews picks the active view set, in priority order:
//  1. the override group for the selected grouping-attribute value, when it
//     has a non-empty view list;
//  2. a single transient view synthesized from a variation-specific catalog
//     image, inheriting the first default view's region geometry;
//  3. the default view list, with image, price and surcharge fields
//     re-merged from the authoritative definition so that transient
//     substitutions never leak into persisted state.
//
// variationImage is "" when the catalog has no variation-specific image for
// the current selection.
func ResolveViews(def *product.Definition, selected map[string]string, variationID, variationImage string) []product.View {
	if def.GroupingAttribute != "" {
		if value, ok := selected[def.GroupingAttribute]; ok {
			if group, ok := def.ViewOverrides[value]; ok && len(group.Views) > 0 {
				return copyViews(group.Views)
			}
		}
	}

	if variationImage != "" && len(def.Views) > 0 {
		base := def.Views[0]
		return []product.View{{
			// Deterministic id: the same selection always synthesizes the
			// same transient view.
			ID:            "variation-" + variationID,
			Name:          base.Name,
			ImageURL:      variationImage,
			Regions:       copyRegions(base.Regions),
			Surcharge:     base.Surcharge,
			EmbroideryFee: base.EmbroideryFee,
			PrintFee:      base.PrintFee,
		}}
	}

	return copyViews(def.Views)
}

// FixActiveView keeps the active view id pointing inside the resolved set.
// When the old id is gone it falls back to the set's first entry; it is
// never left dangling.
func FixActiveView(views []product.View, activeViewID string) string {
	for _, v := range views {
		if v.ID == activeViewID {
			return activeViewID
		}
	}
	if len(views) > 0 {
		return views[0].ID
	}
	return ""
}

// Resolve combines variation matching, view resolution and active-view
// fixup. The unit price is the winning variation's (sale) price, falling
// back to the product's base/sale price when nothing matches.
func Resolve(def *product.Definition, sel product.SelectionState, variationImage string) Resolution {
	res := Resolution{UnitPrice: def.UnitPrice()}

	variation := MatchVariation(def, sel.Attributes)
	if variation != nil {
		res.VariationID = variation.ID
		if variation.SalePrice != nil {
			res.UnitPrice = *variation.SalePrice
		} else {
			res.UnitPrice = variation.Price
		}
	}

	res.Views = ResolveViews(def, sel.Attributes, res.VariationID, variationImage)
	res.ActiveViewID = FixActiveView(res.Views, sel.ActiveViewID)
	return res
}

func copyViews(views []product.View) []product.View {
	out := make([]product.View, len(views))
	for i, v := range views {
		v.Regions = copyRegions(v.Regions)
		out[i] = v
	}
	return out
}

func copyRegions(regions []geometry.Region) []geometry.Region {
	out := make([]geometry.Region, len(regions))
	copy(out, regions)
	return out
}
