package resolve

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavonga/decora-backend/internal/modules/catalog"
	"github.com/tavonga/decora-backend/internal/modules/product"
)

type stubProducts struct {
	def *product.Definition
	// gate, when set, blocks GetByID until released. Lets a test hold an
	// early load open while a later one completes.
	gate chan struct{}
	mu   sync.Mutex
	gen  int
}

func (s *stubProducts) GetByID(context.Context, string) (*product.Definition, error) {
	s.mu.Lock()
	s.gen++
	gate := s.gate
	s.gate = nil
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if s.def == nil {
		return nil, fmt.Errorf("no rows")
	}
	return s.def, nil
}

func (s *stubProducts) Create(context.Context, *product.Definition) error       { return nil }
func (s *stubProducts) Update(context.Context, *product.Definition) error       { return nil }
func (s *stubProducts) Delete(context.Context, string) error                    { return nil }
func (s *stubProducts) ListByOwner(context.Context, string) ([]*product.Definition, error) {
	return nil, nil
}

type stubCatalog struct {
	images map[string]string
}

func (s *stubCatalog) SaveEntry(context.Context, catalog.SaveEntryRequest) (*catalog.Entry, error) {
	return nil, nil
}
func (s *stubCatalog) GetEntry(context.Context, string) (*catalog.Entry, error) { return nil, nil }
func (s *stubCatalog) VariationImage(_ context.Context, _, variationID string) string {
	return s.images[variationID]
}

func TestServiceResolveEndToEnd(t *testing.T) {
	def := testDefinition()
	svc := NewService(&stubProducts{def: def}, &stubCatalog{})

	res, err := svc.Resolve(context.Background(), ResolveRequest{
		ProductID:       def.ID.String(),
		Attributes:      map[string]string{"Color": "Green"},
		TechniqueID:     "print",
		NonEmptyViewIDs: []string{"front"},
		Stage:           &StageRect{Width: 800, Height: 800},
	})
	require.NoError(t, err)

	// Incomplete selection with no match: base price.
	assert.Equal(t, 19.99, res.UnitPrice)
	assert.Equal(t, "front", res.ActiveViewID)
	require.Len(t, res.Projected, 1)
	assert.Equal(t, 640.0, res.Projected[0].Width)
}

func TestServiceResolveUsesCatalogImage(t *testing.T) {
	def := testDefinition()
	svc := NewService(&stubProducts{def: def}, &stubCatalog{
		images: map[string]string{"color-red-size-s": "https://img/red.png"},
	})

	res, err := svc.Resolve(context.Background(), ResolveRequest{
		ProductID:  def.ID.String(),
		Attributes: map[string]string{"Color": "Red", "Size": "S"},
	})
	require.NoError(t, err)
	require.Len(t, res.Views, 1)
	assert.Equal(t, "https://img/red.png", res.Views[0].ImageURL)
}

func TestServiceResolveUnknownProduct(t *testing.T) {
	svc := NewService(&stubProducts{}, &stubCatalog{})
	_, err := svc.Resolve(context.Background(), ResolveRequest{ProductID: "missing"})
	assert.Error(t, err)
}

func TestServiceDiscardsStaleLoad(t *testing.T) {
	def := testDefinition()
	gate := make(chan struct{})
	products := &stubProducts{def: def, gate: gate}
	svc := NewService(products, &stubCatalog{})

	var wg sync.WaitGroup
	wg.Add(1)
	var slowErr error
	go func() {
		defer wg.Done()
		// This load blocks on the gate until the newer request finished.
		_, slowErr = svc.Resolve(context.Background(), ResolveRequest{
			ProductID: def.ID.String(),
			SessionID: "session-1",
		})
	}()

	// Wait for the slow load to be in flight.
	for {
		products.mu.Lock()
		started := products.gen > 0
		products.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// The newer request completes first.
	res, err := svc.Resolve(context.Background(), ResolveRequest{
		ProductID: def.ID.String(),
		SessionID: "session-1",
	})
	require.NoError(t, err)
	assert.NotNil(t, res)

	// The earlier load commits after it: stale, discarded.
	close(gate)
	wg.Wait()
	assert.ErrorIs(t, slowErr, ErrStale)
}

func TestTokenSource(t *testing.T) {
	var src TokenSource
	first := src.Acquire()
	second := src.Acquire()
	assert.False(t, src.Commit(first))
	assert.True(t, src.Commit(second))
}
