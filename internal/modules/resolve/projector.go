package resolve

import (
	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/modules/geometry"
	"github.com/tavonga/decora-backend/internal/modules/product"
)

// WidthExpansionFactor widens the clickable hit-area of a projected region
// beyond the visual artwork bounds. Width only; the widened rectangle is
// re-centered on the original horizontal center. Carried over as observed
// behavior — the rationale for the asymmetry is a pending UX question.
const WidthExpansionFactor = 1.6

// StageRect is the live stage's pixel rectangle.
type StageRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ProjectedRegion is a region mapped into on-screen pixels.
type ProjectedRegion struct {
	RegionID uuid.UUID `json:"region_id"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
}

// ProjectRegion maps one percentage-space region onto the stage.
func ProjectRegion(r geometry.Region, stage StageRect) ProjectedRegion {
	baseWidth := stage.Width * r.Width / 100
	width := baseWidth * WidthExpansionFactor
	return ProjectedRegion{
		RegionID: r.ID,
		X:        stage.X + stage.Width*r.X/100 - (width-baseWidth)/2,
		Y:        stage.Y + stage.Height*r.Y/100,
		Width:    width,
		Height:   stage.Height * r.Height / 100,
	}
}

// ProjectView projects every region of a resolved view. Recomputed whenever
// the active view, its region list or the stage rectangle changes.
func ProjectView(v product.View, stage StageRect) []ProjectedRegion {
	out := make([]ProjectedRegion, len(v.Regions))
	for i, r := range v.Regions {
		out[i] = ProjectRegion(r, stage)
	}
	return out
}
