package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/modules/assets"
	"github.com/tavonga/decora-backend/internal/pkg/logger"
)

// Stage is the rendering/canvas collaborator boundary: it knows which view
// is showing, can switch views, can capture a pixel composite of the
// current view and knows which views carry placed elements.
type Stage interface {
	ActiveViewID() string
	SetActiveView(id string)
	Capture(ctx context.Context) ([]byte, error)
	NonEmptyViewIDs() []string
	Elements(viewID string) []Element
}

// Serializer turns the live stage into persistence-ready view snapshots.
type Serializer struct {
	store assets.BlobStore
	log   *logger.Logger
}

func NewSerializer(store assets.BlobStore, log *logger.Logger) *Serializer {
	return &Serializer{store: store, log: log.With("service", "cart-snapshot")}
}

// Snapshot walks every view carrying content: switch the stage to it,
// capture a composite, upload it and record the URL. An upload failure
// embeds the raw image instead of aborting the add-to-cart — availability
// over size-optimality. The previously active view is restored once all
// views are captured, even when an individual capture failed.
func (s *Serializer) Snapshot(ctx context.Context, stage Stage, lineItemID uuid.UUID) []ViewSnapshot {
	previous := stage.ActiveViewID()
	defer stage.SetActiveView(previous)

	var out []ViewSnapshot
	for _, viewID := range stage.NonEmptyViewIDs() {
		snap := ViewSnapshot{
			ViewID:   viewID,
			Elements: stripElements(stage.Elements(viewID)),
		}

		stage.SetActiveView(viewID)
		composite, err := stage.Capture(ctx)
		if err != nil {
			s.log.Warn("view capture failed", "view_id", viewID, "error", err)
			out = append(out, snap)
			continue
		}

		key := fmt.Sprintf("previews/%s/%s.png", lineItemID, viewID)
		url, err := s.store.Upload(ctx, key, "image/png", composite)
		if err != nil {
			s.log.Warn("preview upload failed, embedding raw image", "view_id", viewID, "error", err)
			snap.PreviewInline = composite
		} else {
			snap.PreviewURL = url
		}
		out = append(out, snap)
	}
	return out
}

// stripElements drops inline binary payloads so the persisted line item
// stays small; the back-reference id is all that survives.
func stripElements(elements []Element) []Element {
	out := make([]Element, len(elements))
	for i, el := range elements {
		el.Inline = nil
		out[i] = el
	}
	return out
}
