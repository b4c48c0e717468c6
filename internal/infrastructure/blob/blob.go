package blob

import (
	"context"
	"io"
)

// Store writes opaque byte streams and returns dereferenceable URLs.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
