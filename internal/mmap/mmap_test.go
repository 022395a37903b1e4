package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := []byte("Source,Prod\nToClnt,ABC\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	m, err := Open(path)
	require.NoError(t, err)

	require.Equal(t, content, m.Bytes())
	require.Equal(t, int64(len(content)), m.Size())

	buf := make([]byte, 4)
	n, err := m.ReadAt(buf, 12)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "ToCl", string(buf))

	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // idempotent
	require.Nil(t, m.Bytes())

	_, err = m.ReadAt(buf, 0)
	require.ErrorIs(t, err, ErrClosed)
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	m, err := Open(path)
	require.NoError(t, err)
	require.Zero(t, m.Size())
	require.NoError(t, m.Close())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
