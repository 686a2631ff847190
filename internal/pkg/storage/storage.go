package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded photo blobs live. Paths are relative to
// the backend's root; the caller decides the layout.
type Storage interface {
	// Save writes the content at the given relative path, creating parent
	// directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
