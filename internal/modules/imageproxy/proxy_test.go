package imageproxy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tavonga/decora-backend/internal/pkg/logger"
)

type stubStore struct {
	url string
	err error
}

func (s *stubStore) Upload(context.Context, string, string, []byte) (string, error) {
	return s.url, s.err
}

func TestFetchAsEmbeddableRehosts(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	p := New(&stubStore{url: "https://cdn/proxied/abc"}, logger.NewNop())
	got := p.FetchAsEmbeddable(context.Background(), upstream.URL)
	assert.Equal(t, "https://cdn/proxied/abc", got)
}

func TestFetchAsEmbeddableNeverFails(t *testing.T) {
	p := New(&stubStore{url: "https://cdn/x"}, logger.NewNop())

	// Unreachable host: original url comes back unchanged.
	got := p.FetchAsEmbeddable(context.Background(), "http://127.0.0.1:1/img.png")
	assert.Equal(t, "http://127.0.0.1:1/img.png", got)

	// Upstream error status.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer upstream.Close()
	got = p.FetchAsEmbeddable(context.Background(), upstream.URL)
	assert.Equal(t, upstream.URL, got)

	// Blob store failure.
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("img"))
	}))
	defer ok.Close()
	failing := New(&stubStore{err: fmt.Errorf("bucket down")}, logger.NewNop())
	got = failing.FetchAsEmbeddable(context.Background(), ok.URL)
	assert.Equal(t, ok.URL, got)

	// Empty input.
	assert.Equal(t, "", p.FetchAsEmbeddable(context.Background(), ""))
}
