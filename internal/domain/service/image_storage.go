package service

import (
	"context"
	"io"
)

// RemoveStatus classifies the outcome of an image removal.
type RemoveStatus int

const (
	// RemoveStatusDeleted means the blob existed and was deleted.
	RemoveStatusDeleted RemoveStatus = iota
	// RemoveStatusNotFound means there was nothing to delete.
	RemoveStatusNotFound
	// RemoveStatusSkipped means the reference does not point into managed storage.
	RemoveStatusSkipped
	// RemoveStatusFailed means the delete was attempted and failed.
	RemoveStatusFailed
)

// String returns a log-friendly name.
func (s RemoveStatus) String() string {
	switch s {
	case RemoveStatusDeleted:
		return "deleted"
	case RemoveStatusNotFound:
		return "not_found"
	case RemoveStatusSkipped:
		return "skipped"
	case RemoveStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RemoveResult is returned by ImageStorage.Remove instead of an error.
// Callers log it; a failed removal never fails the caller's operation.
type RemoveResult struct {
	Reference string
	Status    RemoveStatus
	Err       error
}

// OK reports whether the removal left no blob behind.
func (r RemoveResult) OK() bool {
	return r.Status == RemoveStatusDeleted || r.Status == RemoveStatusNotFound
}

// StoredImage describes a blob opened for reading.
type StoredImage struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ImageStorage persists product images under generated names.
type ImageStorage interface {
	// Store writes the content under a fresh collision-free name derived from a random
	// identifier plus the extension of suggestedName, and returns the public reference.
	Store(ctx context.Context, content io.Reader, suggestedName, contentType string) (string, error)

	// Remove deletes the blob behind reference. It never returns an error.
	Remove(ctx context.Context, reference string) RemoveResult

	// Open returns the blob stored under name. The caller closes Body.
	Open(ctx context.Context, name string) (*StoredImage, error)
}
