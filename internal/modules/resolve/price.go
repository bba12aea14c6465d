package resolve

import "github.com/tavonga/decora-backend/internal/modules/product"

// Surcharge returns the decoration fee for one view under the given
// technique: the embroidery fee for embroidery-family techniques, the print
// fee otherwise. An unset technique fee falls back to the view's generic
// surcharge, which defaults to 0.
func Surcharge(v product.View, technique *product.Technique) float64 {
	var fee *float64
	if technique != nil && technique.Family == product.FamilyEmbroidery {
		fee = v.EmbroideryFee
	} else {
		fee = v.PrintFee
	}
	if fee != nil {
		return *fee
	}
	return v.Surcharge
}

// TotalPrice sums the resolved unit price with the surcharge of every view
// that currently carries at least one placed design element. Which views
// carry content is supplied by the rendering collaborator, not computed
// here. Recomputed whenever the non-empty set, the technique or the unit
// price changes.
func TotalPrice(unitPrice float64, views []product.View, nonEmptyViewIDs map[string]bool, technique *product.Technique) float64 {
	total := unitPrice
	for _, v := range views {
		if nonEmptyViewIDs[v.ID] {
			total += Surcharge(v, technique)
		}
	}
	return total
}
