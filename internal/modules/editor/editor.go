package editor

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/modules/geometry"
	"github.com/tavonga/decora-backend/internal/modules/product"
)

// DragSession is the transient state of one direct-manipulation gesture:
// which handle was grabbed, the pointer origin, the region's rectangle at
// session start and the authoring container's pixel size captured at the
// same moment. Capturing the size up front makes every later pixel delta
// convert to the same percentage delta even if the container resizes
// mid-drag.
type DragSession struct {
	RegionID        uuid.UUID
	Handle          geometry.HandleKind
	OriginX         float64
	OriginY         float64
	Start           geometry.Region
	ContainerWidth  float64
	ContainerHeight float64
}

// Editor owns the authoring-time view/region collection for one variant
// group and runs drag sessions against it. All out-of-range input is
// silently clamped and all cap overflows are silent no-ops; normal
// operation never raises an error.
type Editor struct {
	mu           sync.Mutex
	views        []product.View
	activeViewID string
	session      *DragSession
	frames       *coalescer

	containerWidth  float64
	containerHeight float64
}

// New creates an editor over a copy of the given views. The container size
// is the authoring surface's current pixel size.
func New(views []product.View, containerWidth, containerHeight float64, scheduler FrameScheduler) *Editor {
	copied := make([]product.View, len(views))
	for i, v := range views {
		v.Regions = append([]geometry.Region(nil), v.Regions...)
		copied[i] = v
	}
	e := &Editor{
		views:           copied,
		frames:          newCoalescer(scheduler),
		containerWidth:  containerWidth,
		containerHeight: containerHeight,
	}
	if len(copied) > 0 {
		e.activeViewID = copied[0].ID
	}
	return e
}

// SetContainerSize records a resize of the authoring surface. An open
// session keeps the size it captured at start.
func (e *Editor) SetContainerSize(width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.containerWidth = width
	e.containerHeight = height
}

// Views returns a snapshot of the authoring collection.
func (e *Editor) Views() []product.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]product.View, len(e.views))
	for i, v := range e.views {
		v.Regions = append([]geometry.Region(nil), v.Regions...)
		out[i] = v
	}
	return out
}

// ActiveViewID returns the currently active view id, or "" when the
// collection is empty.
func (e *Editor) ActiveViewID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeViewID
}

// SetActiveView switches the active view. Unknown ids are ignored.
func (e *Editor) SetActiveView(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.views {
		if v.ID == id {
			e.activeViewID = id
			return
		}
	}
}

// StartSession opens a drag session on a region of the active view. While a
// session is open further starts are ignored: only one session may exist at
// a time.
func (e *Editor) StartSession(regionID uuid.UUID, handle geometry.HandleKind, pointerX, pointerY float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		return
	}
	view := e.activeViewLocked()
	if view == nil {
		return
	}
	for _, r := range view.Regions {
		if r.ID == regionID {
			e.session = &DragSession{
				RegionID:        regionID,
				Handle:          handle,
				OriginX:         pointerX,
				OriginY:         pointerY,
				Start:           r,
				ContainerWidth:  e.containerWidth,
				ContainerHeight: e.containerHeight,
			}
			return
		}
	}
}

// UpdateSession feeds a pointer position into the open session. Positions
// are coalesced: at most one geometry mutation per frame, using the most
// recent position received during that frame.
func (e *Editor) UpdateSession(pointerX, pointerY float64) {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()
	e.frames.Offer(pointer{X: pointerX, Y: pointerY}, e.applyPointer)
}

// EndSession closes the session and drops any scheduled-but-unapplied
// flush. Safe to call on every exit path, including after teardown; never
// more than once effective.
func (e *Editor) EndSession() {
	e.frames.Stop()
	e.mu.Lock()
	e.session = nil
	e.mu.Unlock()
}

// Close tears the editor down, ending any open session.
func (e *Editor) Close() { e.EndSession() }

func (e *Editor) applyPointer(p pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session
	if s == nil {
		// Flush raced a session end; the position is discarded.
		return
	}
	if s.ContainerWidth <= 0 || s.ContainerHeight <= 0 {
		return
	}
	dx := (p.X - s.OriginX) / s.ContainerWidth * 100
	dy := (p.Y - s.OriginY) / s.ContainerHeight * 100
	next := geometry.Apply(s.Start, s.Handle, dx, dy)

	view := e.activeViewLocked()
	if view == nil {
		return
	}
	for i, r := range view.Regions {
		if r.ID == s.RegionID {
			view.Regions[i] = next
			return
		}
	}
}

// AddRegion appends a default region to the active view and returns it.
// Silent no-op (nil) once the view already holds the maximum.
func (e *Editor) AddRegion() *geometry.Region {
	e.mu.Lock()
	defer e.mu.Unlock()
	view := e.activeViewLocked()
	if view == nil || len(view.Regions) >= product.MaxViewRegions {
		return nil
	}
	r := geometry.Region{
		ID:     uuid.New(),
		Name:   "Area",
		X:      35,
		Y:      35,
		Width:  30,
		Height: 30,
	}
	view.Regions = append(view.Regions, r)
	return &r
}

// RemoveRegion deletes a region from the active view. Unknown ids are
// ignored. An open session on the removed region is ended.
func (e *Editor) RemoveRegion(id uuid.UUID) {
	e.mu.Lock()
	view := e.activeViewLocked()
	endSession := false
	if view != nil {
		for i, r := range view.Regions {
			if r.ID == id {
				view.Regions = append(view.Regions[:i], view.Regions[i+1:]...)
				endSession = e.session != nil && e.session.RegionID == id
				break
			}
		}
	}
	e.mu.Unlock()
	if endSession {
		e.EndSession()
	}
}

// AddView appends a new empty view and returns it. Silent no-op (nil) once
// the collection already holds the maximum.
func (e *Editor) AddView(name, imageURL string) *product.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.views) >= product.MaxViews {
		return nil
	}
	v := product.View{ID: uuid.NewString(), Name: name, ImageURL: imageURL}
	e.views = append(e.views, v)
	if e.activeViewID == "" {
		e.activeViewID = v.ID
	}
	return &v
}

// RemoveView deletes a view. Removing the active view re-targets the active
// id to the first remaining view, or "" when none remain; it is never left
// referencing a removed id.
func (e *Editor) RemoveView(id string) {
	e.mu.Lock()
	for i, v := range e.views {
		if v.ID == id {
			e.views = append(e.views[:i], e.views[i+1:]...)
			break
		}
	}
	if e.activeViewID == id {
		if len(e.views) > 0 {
			e.activeViewID = e.views[0].ID
		} else {
			e.activeViewID = ""
		}
	}
	clearSession := e.session != nil && e.activeViewID == ""
	e.mu.Unlock()
	if clearSession {
		e.EndSession()
	}
}

func (e *Editor) activeViewLocked() *product.View {
	for i := range e.views {
		if e.views[i].ID == e.activeViewID {
			return &e.views[i]
		}
	}
	return nil
}
