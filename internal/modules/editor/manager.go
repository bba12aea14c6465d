package editor

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/product"
)

// Manager owns the live editors, one per authoring browser session. Editors
// hold unsaved work in memory; Commit pushes it through the definition
// store, and a failed save keeps the editor open so the work is not lost.
type Manager struct {
	products  product.Service
	scheduler FrameScheduler

	mu      sync.Mutex
	editors map[string]*session
}

type session struct {
	editor    *Editor
	ownerID   string
	productID string
}

func NewManager(products product.Service, scheduler FrameScheduler) *Manager {
	return &Manager{
		products:  products,
		scheduler: scheduler,
		editors:   map[string]*session{},
	}
}

// Open loads a definition and starts an editor over its default view list.
// Returns the new editor id.
func (m *Manager) Open(ctx context.Context, ownerID, productID string, containerWidth, containerHeight float64) (string, *Editor, error) {
	def, err := m.products.GetProduct(ctx, ownerID, productID)
	if err != nil {
		return "", nil, err
	}
	e := New(def.Views, containerWidth, containerHeight, m.scheduler)
	id := uuid.NewString()

	m.mu.Lock()
	m.editors[id] = &session{editor: e, ownerID: ownerID, productID: productID}
	m.mu.Unlock()
	return id, e, nil
}

// Get returns an open editor. Editors are owner-scoped: another merchant's
// editor id is treated as absent.
func (m *Manager) Get(id, ownerID string) (*Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.editors[id]
	if !ok || s.ownerID != ownerID {
		return nil, apperr.NotFound("editor %s not found", id)
	}
	return s.editor, nil
}

// Commit persists the editor's current view collection onto the stored
// definition. The editor stays open either way; on persistence failure the
// in-memory state is untouched.
func (m *Manager) Commit(ctx context.Context, id, ownerID string) (*product.Definition, error) {
	m.mu.Lock()
	s, ok := m.editors[id]
	m.mu.Unlock()
	if !ok || s.ownerID != ownerID {
		return nil, apperr.NotFound("editor %s not found", id)
	}
	views := s.editor.Views()
	return m.products.SaveDesign(ctx, ownerID, s.productID, product.SaveDesignRequest{Views: &views})
}

// Close tears the editor down and forgets it. Unknown ids are ignored.
func (m *Manager) Close(id, ownerID string) {
	m.mu.Lock()
	s, ok := m.editors[id]
	if ok && s.ownerID == ownerID {
		delete(m.editors, id)
	} else {
		s = nil
	}
	m.mu.Unlock()
	if s != nil {
		s.editor.Close()
	}
}
