package storage

import "context"

// BlobStore abstracts the object store holding uploaded documents and
// extracted page images.
type BlobStore interface {
	// Put stores data under key and returns a URL the rest of the
	// system can hand to downstream consumers.
	Put(ctx context.Context, data []byte, key string, contentType string) (string, error)

	// Get fetches the full content stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// PresignedURL returns a time-limited download URL for key.
	PresignedURL(ctx context.Context, key string) (string, error)
}
