package blobstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hupe1980/tickscan/internal/mmap"
)

// LocalStore implements BlobStore on the local file system. Files are
// memory-mapped, which makes positional reads during prefetch free of
// syscalls.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}
	return &localBlob{m: m}, nil
}

type localBlob struct {
	m *mmap.File
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	return b.m.ReadAt(p, off)
}

func (b *localBlob) Size() int64 { return b.m.Size() }

func (b *localBlob) ReadRange(off, n int64) (io.ReadCloser, error) {
	if off < 0 || off > b.m.Size() {
		return nil, fmt.Errorf("range start %d outside blob of %d bytes", off, b.m.Size())
	}
	return io.NopCloser(io.NewSectionReader(b.m, off, n)), nil
}

func (b *localBlob) Close() error { return b.m.Close() }

// Bytes returns the mapped content without copying. The slice is valid
// until the blob is closed.
func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes(), nil
}
