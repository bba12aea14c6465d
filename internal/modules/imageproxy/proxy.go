package imageproxy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/tavonga/decora-backend/internal/modules/assets"
	"github.com/tavonga/decora-backend/internal/pkg/logger"
)

// maxImageBytes bounds how much of a remote image the proxy will buffer.
const maxImageBytes = 16 << 20

// Proxy rehosts remote product images so the rendering surface can load
// them without cross-origin restrictions.
type Proxy struct {
	client *http.Client
	store  assets.BlobStore
	log    *logger.Logger
}

func New(store assets.BlobStore, log *logger.Logger) *Proxy {
	return &Proxy{
		client: &http.Client{Timeout: 20 * time.Second},
		store:  store,
		log:    log.With("service", "imageproxy"),
	}
}

// FetchAsEmbeddable fetches url and rehosts it, returning the rehosted URL.
// It never fails: on any error the original url is returned unchanged, so
// callers always receive a usable string.
func (p *Proxy) FetchAsEmbeddable(ctx context.Context, url string) string {
	if url == "" {
		return url
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return url
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Debug("image fetch failed", "url", url, "error", err)
		return url
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		p.log.Debug("image fetch failed", "url", url, "status", resp.StatusCode)
		return url
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return url
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	sum := sha256.Sum256([]byte(url))
	key := "proxied/" + hex.EncodeToString(sum[:16])
	rehosted, err := p.store.Upload(ctx, key, contentType, data)
	if err != nil {
		p.log.Warn("image rehost failed", "url", url, "error", err)
		return url
	}
	return rehosted
}
