package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavonga/decora-backend/internal/pkg/logger"
)

type memoryRepo struct {
	entries map[string]*Entry
	err     error
}

func (m *memoryRepo) Upsert(_ context.Context, e *Entry) error {
	if m.entries == nil {
		m.entries = map[string]*Entry{}
	}
	m.entries[e.ProductID.String()] = e
	return nil
}

func (m *memoryRepo) GetByProductID(_ context.Context, productID string) (*Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entries[productID]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return e, nil
}

func TestVariationImage(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, logger.NewNop())
	productID := uuid.NewString()

	_, err := svc.SaveEntry(context.Background(), SaveEntryRequest{
		ProductID: productID,
		Source:    "woocommerce",
		VariationImages: map[string]string{
			"color-red-size-l": "https://shop/red-l.png",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://shop/red-l.png", svc.VariationImage(context.Background(), productID, "color-red-size-l"))
	assert.Equal(t, "", svc.VariationImage(context.Background(), productID, "color-blue-size-s"))
}

func TestVariationImageDegradesOnFailure(t *testing.T) {
	svc := NewService(&memoryRepo{err: fmt.Errorf("upstream down")}, logger.NewNop())
	// A failing catalog never blocks resolution: it just has no image.
	assert.Equal(t, "", svc.VariationImage(context.Background(), uuid.NewString(), "any"))
}
