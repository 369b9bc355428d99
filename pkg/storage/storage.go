package storage

import (
	"context"
	"io"
)

// ObjectStore abstracts the external blob store that holds post images.
// Store returns a publicly resolvable URL for the blob; Delete removes the
// blob that URL points at.
type ObjectStore interface {
	Store(ctx context.Context, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
