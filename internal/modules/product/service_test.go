package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/geometry"
)

type memoryRepo struct {
	defs map[string]*Definition
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{defs: map[string]*Definition{}} }

func (m *memoryRepo) Create(_ context.Context, def *Definition) error {
	cp := *def
	m.defs[def.ID.String()] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Definition, error) {
	def, ok := m.defs[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	cp := *def
	return &cp, nil
}

func (m *memoryRepo) ListByOwner(_ context.Context, ownerID string) ([]*Definition, error) {
	var out []*Definition
	for _, def := range m.defs {
		if def.OwnerID.String() == ownerID {
			cp := *def
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, def *Definition) error {
	cp := *def
	m.defs[def.ID.String()] = &cp
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	delete(m.defs, id)
	return nil
}

func TestCreateProductSeedsDefaultView(t *testing.T) {
	svc := NewService(newMemoryRepo())
	owner := uuid.NewString()

	def, err := svc.CreateProduct(context.Background(), owner, CreateProductRequest{
		Name: "Hoodie", Kind: "variable", BasePrice: 29.99, ImageURL: "https://img/front.png",
	})
	require.NoError(t, err)
	require.Len(t, def.Views, 1)
	assert.Equal(t, "Front", def.Views[0].Name)
	assert.Len(t, def.Techniques, 2)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.CreateProduct(context.Background(), uuid.NewString(), CreateProductRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGetProductOwnership(t *testing.T) {
	svc := NewService(newMemoryRepo())
	owner := uuid.NewString()
	def, err := svc.CreateProduct(context.Background(), owner, CreateProductRequest{Name: "Cap"})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), uuid.NewString(), def.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.KindPermission))

	_, err = svc.GetProduct(context.Background(), owner, uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSaveDesignMergesOnlyPresentFields(t *testing.T) {
	svc := NewService(newMemoryRepo())
	owner := uuid.NewString()
	def, err := svc.CreateProduct(context.Background(), owner, CreateProductRequest{Name: "Tee", BasePrice: 19.99})
	require.NoError(t, err)

	grouping := "Color"
	got, err := svc.SaveDesign(context.Background(), owner, def.ID.String(), SaveDesignRequest{
		GroupingAttribute: &grouping,
	})
	require.NoError(t, err)
	assert.Equal(t, "Color", got.GroupingAttribute)
	// Untouched fields survive the merge.
	assert.Equal(t, "Tee", got.Name)
	assert.Equal(t, 19.99, got.BasePrice)
	assert.Len(t, got.Views, 1)
}

func TestSaveDesignClampsViewsAndRegions(t *testing.T) {
	svc := NewService(newMemoryRepo())
	owner := uuid.NewString()
	def, err := svc.CreateProduct(context.Background(), owner, CreateProductRequest{Name: "Tee"})
	require.NoError(t, err)

	region := geometry.Region{ID: uuid.New(), X: -10, Y: 20, Width: 300, Height: 2}
	views := []View{
		{Name: "Front", Regions: []geometry.Region{region, region, region, region}},
		{Name: "Back"}, {Name: "Left"}, {Name: "Right"}, {Name: "Extra"},
	}
	got, err := svc.SaveDesign(context.Background(), owner, def.ID.String(), SaveDesignRequest{Views: &views})
	require.NoError(t, err)

	require.Len(t, got.Views, MaxViews)
	require.Len(t, got.Views[0].Regions, MaxViewRegions)
	for _, r := range got.Views[0].Regions {
		assert.True(t, geometry.Valid(r))
	}
}

func TestSaveDesignAttributesTriggerRegeneration(t *testing.T) {
	svc := NewService(newMemoryRepo())
	owner := uuid.NewString()
	def, err := svc.CreateProduct(context.Background(), owner, CreateProductRequest{Name: "Tee", BasePrice: 15})
	require.NoError(t, err)

	attrs := []AttributeDefinition{
		{Name: "Size", Options: []AttributeOption{{Name: "S"}, {Name: "M"}}},
	}
	got, err := svc.SaveDesign(context.Background(), owner, def.ID.String(), SaveDesignRequest{Attributes: &attrs})
	require.NoError(t, err)
	require.Len(t, got.Variations, 2)
	assert.Equal(t, 15.0, got.Variations[0].Price)
}
