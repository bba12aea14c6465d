package geometry

import "github.com/google/uuid"

// All coordinates in this package are percentages of the owning product
// image, 0–100 on both axes. A region therefore renders identically no
// matter what pixel size the image is displayed at.

const (
	// MinWidth and MinHeight are the smallest size a region may shrink to.
	MinWidth  = 5.0
	MinHeight = 5.0
)

// HandleKind identifies which part of a region a drag grabbed.
type HandleKind string

const (
	HandleMove              HandleKind = "move"
	HandleResizeTopLeft     HandleKind = "resize-top-left"
	HandleResizeTopRight    HandleKind = "resize-top-right"
	HandleResizeBottomLeft  HandleKind = "resize-bottom-left"
	HandleResizeBottomRight HandleKind = "resize-bottom-right"
)

// Region is a merchant-authored boundary box marking where a shopper may
// place design content on a view's image.
type Region struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// ClampSize enforces the minimum region size and caps it at the full
// image, keeping the position clamp range well-formed.
func ClampSize(w, h float64) (float64, float64) {
	return clamp(w, MinWidth, 100), clamp(h, MinHeight, 100)
}

// ClampPosition keeps a region of the given size fully inside the image.
// The size must already be clamped; a w or h above 100 would produce an
// inverted clamp range.
func ClampPosition(x, y, w, h float64) (float64, float64) {
	return clamp(x, 0, 100-w), clamp(y, 0, 100-h)
}

// ApplyDelta maps a pointer delta onto a region according to the handle
// grabbed, returning the raw rectangle before any clamping. Each handle
// distributes the delta asymmetrically: dragging the top-left corner moves
// the origin and shrinks the size, dragging the bottom-right only grows it.
func ApplyDelta(r Region, handle HandleKind, dx, dy float64) Region {
	switch handle {
	case HandleMove:
		r.X += dx
		r.Y += dy
	case HandleResizeTopLeft:
		r.X += dx
		r.Y += dy
		r.Width -= dx
		r.Height -= dy
	case HandleResizeTopRight:
		r.Y += dy
		r.Width += dx
		r.Height -= dy
	case HandleResizeBottomLeft:
		r.X += dx
		r.Width -= dx
		r.Height += dy
	case HandleResizeBottomRight:
		r.Width += dx
		r.Height += dy
	}
	return r
}

// Apply runs ApplyDelta and then restores the invariants: size is clamped
// first, position second, so the position clamp always sees a legal size and
// the region can never end up partially outside the image.
func Apply(r Region, handle HandleKind, dx, dy float64) Region {
	out := ApplyDelta(r, handle, dx, dy)
	out.Width, out.Height = ClampSize(out.Width, out.Height)
	out.X, out.Y = ClampPosition(out.X, out.Y, out.Width, out.Height)
	return out
}

// Valid reports whether r satisfies every region invariant.
func Valid(r Region) bool {
	return r.Width >= MinWidth && r.Height >= MinHeight &&
		r.X >= 0 && r.Y >= 0 &&
		r.X+r.Width <= 100 && r.Y+r.Height <= 100
}

// Normalize clamps an arbitrary rectangle into a valid region. Used when
// loading definitions authored elsewhere.
func Normalize(r Region) Region {
	r.Width, r.Height = ClampSize(r.Width, r.Height)
	r.X, r.Y = ClampPosition(r.X, r.Y, r.Width, r.Height)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
