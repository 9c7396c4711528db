package storage

import (
	"context"
	"io"
)

// Storage is the object-storage collaborator: raw bytes go in, and the
// stored object is later addressable by its path. Implementations do not
// retry internally; failures surface to the caller as upload errors.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object stored at path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
