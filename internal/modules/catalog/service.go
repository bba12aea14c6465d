package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/pkg/logger"
)

// Service is the product source collaborator: the resolution engine asks it
// for variation-specific imagery, and import flows push normalized entries
// into it.
type Service interface {
	// SaveEntry stores or replaces the catalog entry for a product.
	SaveEntry(ctx context.Context, req SaveEntryRequest) (*Entry, error)

	// GetEntry returns the catalog entry for a product, if any.
	GetEntry(ctx context.Context, productID string) (*Entry, error)

	// VariationImage returns the upstream image for one variation of a
	// product, or "" when none is recorded. Upstream failures degrade to ""
	// so resolution is never blocked on the catalog.
	VariationImage(ctx context.Context, productID, variationID string) string
}

// SaveEntryRequest holds a normalized upstream catalog document.
type SaveEntryRequest struct {
	ProductID       string            `json:"product_id"`
	Source          string            `json:"source"`
	ExternalID      string            `json:"external_id,omitempty"`
	VariationImages map[string]string `json:"variation_images,omitempty"`
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log.With("service", "catalog")}
}

func (s *service) SaveEntry(ctx context.Context, req SaveEntryRequest) (*Entry, error) {
	if req.ProductID == "" {
		return nil, apperr.Validation("product_id is required")
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validation("invalid product_id")
	}
	e := &Entry{
		ID:              uuid.New(),
		ProductID:       pid,
		Source:          req.Source,
		ExternalID:      req.ExternalID,
		VariationImages: req.VariationImages,
	}
	if err := s.repo.Upsert(ctx, e); err != nil {
		return nil, apperr.Persistence(err, "failed to save catalog entry")
	}
	return e, nil
}

func (s *service) GetEntry(ctx context.Context, productID string) (*Entry, error) {
	e, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, apperr.NotFound("no catalog entry for product %s", productID)
	}
	return e, nil
}

func (s *service) VariationImage(ctx context.Context, productID, variationID string) string {
	e, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		// Degraded, never fatal: the resolver falls back to default views.
		s.log.Debug("catalog lookup failed", "product_id", productID, "error", err)
		return ""
	}
	return e.VariationImages[variationID]
}
