// Package photostore keeps note photos outside the database. Rows hold
// only a key; the bytes live in a filesystem directory or an
// S3-compatible bucket.
package photostore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound signals a missing photo key.
var ErrNotFound = errors.New("photo not found")

// Store is the blob interface the notes service writes photos through.
type Store interface {
	// Save stores the photo bytes under key with the given content type.
	Save(ctx context.Context, key, contentType string, data []byte) error
	// Open returns a reader over the stored bytes.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes the stored photo. Removing a missing key is not an
	// error.
	Remove(ctx context.Context, key string) error
	// URL returns the public URL path for a stored key.
	URL(key string) string
}
