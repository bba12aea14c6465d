package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/geometry"
)

// Service defines the merchant-facing definition business logic.
type Service interface {
	// CreateProduct creates a definition seeded with a single default view.
	CreateProduct(ctx context.Context, ownerID string, req CreateProductRequest) (*Definition, error)

	// GetProduct retrieves a definition the owner is allowed to see.
	GetProduct(ctx context.Context, ownerID, id string) (*Definition, error)

	// ListProducts returns all definitions belonging to the owner.
	ListProducts(ctx context.Context, ownerID string) ([]*Definition, error)

	// SaveDesign merge-writes the authoring-time fields present in the
	// request onto the stored definition. Fields left nil are untouched.
	SaveDesign(ctx context.Context, ownerID, id string, req SaveDesignRequest) (*Definition, error)

	// Regenerate rebuilds the variation list from the current attribute
	// options, preserving prices of surviving combinations.
	Regenerate(ctx context.Context, ownerID, id string) (*Definition, error)

	// SetVariationPrice updates the price of one variation by its id.
	SetVariationPrice(ctx context.Context, ownerID, id, variationID string, price float64, salePrice *float64) (*Definition, error)

	DeleteProduct(ctx context.Context, ownerID, id string) error
}

// CreateProductRequest holds the data for creating a definition.
type CreateProductRequest struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	BasePrice float64 `json:"base_price"`
	ImageURL  string  `json:"image_url"`
}

// SaveDesignRequest is a partial write: every field is a pointer so that an
// absent field means "keep what is stored".
type SaveDesignRequest struct {
	Name              *string                       `json:"name,omitempty"`
	BasePrice         *float64                      `json:"base_price,omitempty"`
	SalePrice         *float64                      `json:"sale_price,omitempty"`
	Techniques        *[]Technique                  `json:"techniques,omitempty"`
	Attributes        *[]AttributeDefinition        `json:"attributes,omitempty"`
	GroupingAttribute *string                       `json:"grouping_attribute,omitempty"`
	ViewOverrides     *map[string]ViewOverrideGroup `json:"view_overrides,omitempty"`
	Views             *[]View                       `json:"views,omitempty"`
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, ownerID string, req CreateProductRequest) (*Definition, error) {
	if req.Name == "" {
		return nil, apperr.Validation("product name is required")
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperr.Validation("invalid owner id")
	}
	kind := Kind(req.Kind)
	if kind == "" {
		kind = KindSimple
	}
	if kind != KindSimple && kind != KindVariable {
		return nil, apperr.Validation("kind must be %q or %q", KindSimple, KindVariable)
	}

	def := &Definition{
		ID:        uuid.New(),
		OwnerID:   owner,
		Name:      req.Name,
		Kind:      kind,
		BasePrice: req.BasePrice,
		Techniques: []Technique{
			{ID: "print", Name: "Print", Family: FamilyPrint},
			{ID: "embroidery", Name: "Embroidery", Family: FamilyEmbroidery},
		},
		Views: []View{{
			ID:       uuid.NewString(),
			Name:     "Front",
			ImageURL: req.ImageURL,
		}},
	}
	if err := s.repo.Create(ctx, def); err != nil {
		return nil, apperr.Persistence(err, "failed to persist definition")
	}
	return def, nil
}

func (s *service) GetProduct(ctx context.Context, ownerID, id string) (*Definition, error) {
	return s.load(ctx, ownerID, id)
}

func (s *service) ListProducts(ctx context.Context, ownerID string) ([]*Definition, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) SaveDesign(ctx context.Context, ownerID, id string, req SaveDesignRequest) (*Definition, error) {
	def, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		def.Name = *req.Name
	}
	if req.BasePrice != nil {
		def.BasePrice = *req.BasePrice
	}
	if req.SalePrice != nil {
		def.SalePrice = req.SalePrice
	}
	if req.Techniques != nil {
		def.Techniques = *req.Techniques
	}
	if req.Attributes != nil {
		def.Attributes = *req.Attributes
		RegenerateVariations(def)
	}
	if req.GroupingAttribute != nil {
		def.GroupingAttribute = *req.GroupingAttribute
	}
	if req.ViewOverrides != nil {
		overrides := make(map[string]ViewOverrideGroup, len(*req.ViewOverrides))
		for value, group := range *req.ViewOverrides {
			group.Views = sanitizeViews(group.Views)
			overrides[value] = group
		}
		def.ViewOverrides = overrides
	}
	if req.Views != nil {
		views := sanitizeViews(*req.Views)
		if len(views) == 0 {
			return nil, apperr.Validation("a definition needs at least one view")
		}
		def.Views = views
	}

	if err := s.repo.Update(ctx, def); err != nil {
		return nil, apperr.Persistence(err, "failed to save design")
	}
	return def, nil
}

func (s *service) Regenerate(ctx context.Context, ownerID, id string) (*Definition, error) {
	def, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	RegenerateVariations(def)
	if err := s.repo.Update(ctx, def); err != nil {
		return nil, apperr.Persistence(err, "failed to save variations")
	}
	return def, nil
}

func (s *service) SetVariationPrice(ctx context.Context, ownerID, id, variationID string, price float64, salePrice *float64) (*Definition, error) {
	def, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range def.Variations {
		if def.Variations[i].ID == variationID {
			def.Variations[i].Price = price
			def.Variations[i].SalePrice = salePrice
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("variation %s not found", variationID)
	}
	if err := s.repo.Update(ctx, def); err != nil {
		return nil, apperr.Persistence(err, "failed to save variation price")
	}
	return def, nil
}

func (s *service) DeleteProduct(ctx context.Context, ownerID, id string) error {
	if _, err := s.load(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Persistence(err, "failed to delete definition")
	}
	return nil
}

func (s *service) load(ctx context.Context, ownerID, id string) (*Definition, error) {
	if id == "" {
		return nil, apperr.Validation("product id is required")
	}
	def, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("product %s not found", id)
	}
	if def.OwnerID.String() != ownerID {
		return nil, apperr.Permission("product %s does not belong to this merchant", id)
	}
	return def, nil
}

// sanitizeViews enforces the view and region caps and normalizes every
// region back inside its image. Out-of-range input is clamped, not rejected.
func sanitizeViews(views []View) []View {
	if len(views) > MaxViews {
		views = views[:MaxViews]
	}
	out := make([]View, len(views))
	for i, v := range views {
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if len(v.Regions) > MaxViewRegions {
			v.Regions = v.Regions[:MaxViewRegions]
		}
		regions := make([]geometry.Region, len(v.Regions))
		for j, r := range v.Regions {
			regions[j] = geometry.Normalize(r)
		}
		v.Regions = regions
		out[i] = v
	}
	return out
}
