package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore opens named input blobs for reading.
type BlobStore interface {
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to an input blob.
type Blob interface {
	io.ReaderAt
	io.Closer

	// Size returns the size of the blob in bytes.
	Size() int64

	// ReadRange returns a sequential reader over n bytes starting at
	// off. Cloud implementations serve this as one streaming request
	// instead of repeated positional reads.
	ReadRange(off, n int64) (io.ReadCloser, error)
}
