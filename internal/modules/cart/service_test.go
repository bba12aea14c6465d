package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/product"
	"github.com/tavonga/decora-backend/internal/modules/resolve"
	"github.com/tavonga/decora-backend/internal/pkg/logger"
)

type memoryRepo struct {
	items map[string][]LineItem
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{items: map[string][]LineItem{}} }

func (m *memoryRepo) Get(_ context.Context, ownerID string) ([]LineItem, error) {
	return append([]LineItem(nil), m.items[ownerID]...), nil
}

func (m *memoryRepo) Replace(_ context.Context, ownerID string, items []LineItem) error {
	m.items[ownerID] = append([]LineItem(nil), items...)
	return nil
}

type stubResolver struct {
	last resolve.ResolveRequest
}

func (s *stubResolver) Resolve(_ context.Context, req resolve.ResolveRequest) (*resolve.ResolveResponse, error) {
	s.last = req
	total := 19.99
	for _, id := range req.NonEmptyViewIDs {
		if id == "front" {
			total += 3.00
		}
	}
	return &resolve.ResolveResponse{
		Resolution: resolve.Resolution{
			UnitPrice:    19.99,
			VariationID:  "color-red-size-l",
			ActiveViewID: "front",
			Views:        []product.View{{ID: "front"}, {ID: "back"}},
		},
		TotalPrice: total,
	}, nil
}

func TestAddToCart(t *testing.T) {
	repo := newMemoryRepo()
	resolver := &stubResolver{}
	svc := NewService(resolver, NewSerializer(&stubStore{}, logger.NewNop()), repo)
	owner := uuid.NewString()

	item, err := svc.AddToCart(context.Background(), owner, AddToCartRequest{
		ProductID:    uuid.NewString(),
		Quantity:     2,
		Attributes:   map[string]string{"Color": "Red", "Size": "L"},
		TechniqueID:  "print",
		ActiveViewID: "front",
		Views: []ViewPayload{
			{ViewID: "front", Composite: []byte("png"), Elements: []Element{{ID: "el", Kind: "image", Inline: []byte("raw")}}},
			{ViewID: "back"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, item.Quantity)
	assert.InDelta(t, 22.99, item.UnitPrice, 1e-9)
	assert.Equal(t, "color-red-size-l", item.VariationID)
	// Only the view with content was snapshotted, payload stripped.
	require.Len(t, item.Views, 1)
	assert.Nil(t, item.Views[0].Elements[0].Inline)

	// The resolver was told exactly which views carry content.
	assert.Equal(t, []string{"front"}, resolver.last.NonEmptyViewIDs)

	stored, err := svc.GetCart(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, item.ID, stored[0].ID)
}

func TestAddToCartValidation(t *testing.T) {
	svc := NewService(&stubResolver{}, NewSerializer(&stubStore{}, logger.NewNop()), newMemoryRepo())
	_, err := svc.AddToCart(context.Background(), uuid.NewString(), AddToCartRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestRemoveLineItem(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(&stubResolver{}, NewSerializer(&stubStore{}, logger.NewNop()), repo)
	owner := uuid.NewString()

	item, err := svc.AddToCart(context.Background(), owner, AddToCartRequest{
		ProductID: uuid.NewString(),
		Views:     []ViewPayload{{ViewID: "front", Composite: []byte("png"), Elements: []Element{{ID: "el"}}}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLineItem(context.Background(), owner, item.ID.String()))
	items, err := svc.GetCart(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.RemoveLineItem(context.Background(), owner, uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
