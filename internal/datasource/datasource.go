// Package datasource abstracts where the revenue feed comes from. A Source
// yields a byte stream; the parser decides what those bytes mean.
package datasource

import (
	"context"
	"io"
)

// Source opens the raw revenue feed for reading. Callers own the returned
// ReadCloser and must close it.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
