package assets

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
)

// BlobStore persists rendered previews and proxied images and hands back a
// durable URL. Callers treat upload failures as degraded: the cart
// serializer embeds the raw image instead and carries on.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type bucketStore struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

// NewBucketStore creates a GCS-backed store. Reads PREVIEW_GCS_BUCKET_NAME
// and the optional PREVIEW_CDN_DOMAIN from the environment.
func NewBucketStore(ctx context.Context) (BlobStore, error) {
	bucket := os.Getenv("PREVIEW_GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var PREVIEW_GCS_BUCKET_NAME")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &bucketStore{
		client:    client,
		bucket:    bucket,
		cdnDomain: os.Getenv("PREVIEW_CDN_DOMAIN"),
	}, nil
}

// Unavailable is a BlobStore whose uploads always fail. Used when no bucket
// is configured, so callers exercise their degraded paths (inline previews,
// original image URLs) instead of crashing at startup.
type Unavailable struct{ Reason string }

func (u Unavailable) Upload(context.Context, string, string, []byte) (string, error) {
	return "", fmt.Errorf("blob store unavailable: %s", u.Reason)
}

func (s *bucketStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", key, err)
	}
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key), nil
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}
