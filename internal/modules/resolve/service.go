package resolve

import (
	"context"
	"errors"
	"sync"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/catalog"
	"github.com/tavonga/decora-backend/internal/modules/product"
)

// ErrStale is returned when a resolution load was superseded by a newer one
// for the same session before it could commit. Callers drop the response.
var ErrStale = errors.New("resolution superseded by a newer request")

// Service runs the full resolution pipeline for one request: load the
// definition, match the variation, resolve the view set, aggregate the
// price and project the active view onto the stage.
type Service interface {
	Resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error)
}

// ResolveRequest carries a shopper/editor selection. SessionID scopes the
// stale-load guard; requests without one are never discarded.
type ResolveRequest struct {
	ProductID       string            `json:"product_id"`
	SessionID       string            `json:"session_id,omitempty"`
	Attributes      map[string]string `json:"attributes"`
	TechniqueID     string            `json:"technique_id,omitempty"`
	ActiveViewID    string            `json:"active_view_id,omitempty"`
	Stage           *StageRect        `json:"stage,omitempty"`
	NonEmptyViewIDs []string          `json:"non_empty_view_ids,omitempty"`
}

// ResolveResponse is a Resolution plus the aggregated total and, when a
// stage rectangle was supplied, the active view's projected regions.
type ResolveResponse struct {
	Resolution
	TotalPrice float64           `json:"total_price"`
	Projected  []ProjectedRegion `json:"projected,omitempty"`
}

type service struct {
	products product.Repository
	catalog  catalog.Service

	mu     sync.Mutex
	tokens map[string]*TokenSource
}

func NewService(products product.Repository, catalogSvc catalog.Service) Service {
	return &service{
		products: products,
		catalog:  catalogSvc,
		tokens:   map[string]*TokenSource{},
	}
}

func (s *service) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error) {
	if req.ProductID == "" {
		return nil, apperr.Validation("product_id is required")
	}

	var token uint64
	var source *TokenSource
	if req.SessionID != "" {
		source = s.tokenSource(req.SessionID)
		token = source.Acquire()
	}

	def, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, apperr.NotFound("product %s not found", req.ProductID)
	}

	sel := product.SelectionState{
		Attributes:   req.Attributes,
		TechniqueID:  req.TechniqueID,
		ActiveViewID: req.ActiveViewID,
	}

	// The catalog lookup is degraded, never fatal: "" means no
	// variation-specific image and the defaults win.
	var variationImage string
	if v := MatchVariation(def, sel.Attributes); v != nil {
		variationImage = s.catalog.VariationImage(ctx, req.ProductID, v.ID)
	}

	// Commit gate: if a newer request for this session started while we
	// were loading, this response is stale and must be discarded.
	if source != nil && !source.Commit(token) {
		return nil, ErrStale
	}

	res := Resolve(def, sel, variationImage)

	nonEmpty := make(map[string]bool, len(req.NonEmptyViewIDs))
	for _, id := range req.NonEmptyViewIDs {
		nonEmpty[id] = true
	}
	technique := def.TechniqueByID(req.TechniqueID)

	out := &ResolveResponse{
		Resolution: res,
		TotalPrice: TotalPrice(res.UnitPrice, res.Views, nonEmpty, technique),
	}
	if req.Stage != nil {
		for _, v := range res.Views {
			if v.ID == res.ActiveViewID {
				out.Projected = ProjectView(v, *req.Stage)
				break
			}
		}
	}
	return out, nil
}

func (s *service) tokenSource(sessionID string) *TokenSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.tokens[sessionID]
	if !ok {
		src = &TokenSource{}
		s.tokens[sessionID] = src
	}
	return src
}
