package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/resolve"
)

// Service defines the checkout-intent business logic.
type Service interface {
	// AddToCart resolves the selection one last time, snapshots every view
	// carrying content and appends the line item to the owner's cart.
	AddToCart(ctx context.Context, ownerID string, req AddToCartRequest) (*LineItem, error)

	// GetCart returns the owner's current line items.
	GetCart(ctx context.Context, ownerID string) ([]LineItem, error)

	// RemoveLineItem drops one line item by id.
	RemoveLineItem(ctx context.Context, ownerID, lineItemID string) error
}

// ViewPayload is one view's client-rendered composite plus its element
// snapshot, as captured by the rendering surface at checkout intent.
type ViewPayload struct {
	ViewID    string    `json:"view_id"`
	Composite []byte    `json:"composite,omitempty"` // rendered PNG
	Elements  []Element `json:"elements"`
}

// AddToCartRequest carries the shopper's final selection and the rendered
// per-view payloads.
type AddToCartRequest struct {
	ProductID    string            `json:"product_id"`
	Quantity     int               `json:"quantity"`
	Attributes   map[string]string `json:"attributes"`
	TechniqueID  string            `json:"technique_id,omitempty"`
	ActiveViewID string            `json:"active_view_id,omitempty"`
	Views        []ViewPayload     `json:"views"`
}

type service struct {
	resolver   resolve.Service
	serializer *Serializer
	repo       Repository
}

func NewService(resolver resolve.Service, serializer *Serializer, repo Repository) Service {
	return &service{resolver: resolver, serializer: serializer, repo: repo}
}

func (s *service) AddToCart(ctx context.Context, ownerID string, req AddToCartRequest) (*LineItem, error) {
	if req.ProductID == "" {
		return nil, apperr.Validation("product_id is required")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validation("invalid product_id")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	// Re-run resolution server side so the persisted unit price is the
	// engine's answer, not the client's.
	nonEmpty := make([]string, 0, len(req.Views))
	for _, v := range req.Views {
		if len(v.Elements) > 0 {
			nonEmpty = append(nonEmpty, v.ViewID)
		}
	}
	res, err := s.resolver.Resolve(ctx, resolve.ResolveRequest{
		ProductID:       req.ProductID,
		Attributes:      req.Attributes,
		TechniqueID:     req.TechniqueID,
		ActiveViewID:    req.ActiveViewID,
		NonEmptyViewIDs: nonEmpty,
	})
	if err != nil {
		return nil, err
	}

	item := LineItem{
		ID:          uuid.New(),
		ProductID:   productID,
		VariationID: res.VariationID,
		Attributes:  req.Attributes,
		TechniqueID: req.TechniqueID,
		Quantity:    req.Quantity,
		UnitPrice:   res.TotalPrice,
		CreatedAt:   time.Now().UTC(),
	}
	item.Views = s.serializer.Snapshot(ctx, newPayloadStage(req.Views, res.ActiveViewID), item.ID)

	items, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, apperr.Persistence(err, "failed to read cart")
	}
	items = append(items, item)
	if err := s.repo.Replace(ctx, ownerID, items); err != nil {
		return nil, apperr.Persistence(err, "failed to write cart")
	}
	return &item, nil
}

func (s *service) GetCart(ctx context.Context, ownerID string) ([]LineItem, error) {
	items, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, apperr.Persistence(err, "failed to read cart")
	}
	return items, nil
}

func (s *service) RemoveLineItem(ctx context.Context, ownerID, lineItemID string) error {
	items, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return apperr.Persistence(err, "failed to read cart")
	}
	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID.String() == lineItemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return apperr.NotFound("line item %s not found", lineItemID)
	}
	if err := s.repo.Replace(ctx, ownerID, kept); err != nil {
		return apperr.Persistence(err, "failed to write cart")
	}
	return nil
}

// payloadStage adapts the request's pre-rendered view payloads to the Stage
// boundary the serializer drives.
type payloadStage struct {
	views  map[string]ViewPayload
	order  []string
	active string
}

func newPayloadStage(views []ViewPayload, activeViewID string) *payloadStage {
	st := &payloadStage{views: make(map[string]ViewPayload, len(views)), active: activeViewID}
	for _, v := range views {
		st.views[v.ViewID] = v
		st.order = append(st.order, v.ViewID)
	}
	return st
}

func (p *payloadStage) ActiveViewID() string    { return p.active }
func (p *payloadStage) SetActiveView(id string) { p.active = id }

func (p *payloadStage) Capture(context.Context) ([]byte, error) {
	v, ok := p.views[p.active]
	if !ok || len(v.Composite) == 0 {
		return nil, apperr.Validation("no composite rendered for view %s", p.active)
	}
	return v.Composite, nil
}

func (p *payloadStage) NonEmptyViewIDs() []string {
	var out []string
	for _, id := range p.order {
		if len(p.views[id].Elements) > 0 {
			out = append(out, id)
		}
	}
	return out
}

func (p *payloadStage) Elements(viewID string) []Element { return p.views[viewID].Elements }
