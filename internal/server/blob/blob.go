// Package blob abstracts binary storage for uploaded documents. The
// reference backend writes to a local directory; an S3-compatible backend
// is selected when an endpoint is configured.
package blob

import (
	"context"
	"io"
)

// Store persists opaque blobs under server-generated keys.
type Store interface {
	// Put streams content into storage under key.
	Put(ctx context.Context, key string, content io.Reader) error
	// Get opens the blob for reading. The caller closes the ReadCloser.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
