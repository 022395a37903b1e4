package scan

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefetcher_MatchesDirectRead(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 10_000)
	rng.Read(data)

	for _, regionSize := range []int{1, 7, 64, 1000, 4096, 64 * 1024} {
		p, err := NewPrefetcher(bytes.NewReader(data), regionSize)
		require.NoError(t, err)

		got, err := io.ReadAll(p)
		require.NoError(t, err)
		require.Equal(t, data, got, "regionSize=%d", regionSize)
	}
}

func TestPrefetcher_EmptyInput(t *testing.T) {
	p, err := NewPrefetcher(bytes.NewReader(nil), 16)
	require.NoError(t, err)

	n, err := p.Read(make([]byte, 8))
	require.Equal(t, 0, n)
	require.ErrorIs(t, err, io.EOF)

	// EOF is sticky.
	_, err = p.Read(make([]byte, 8))
	require.ErrorIs(t, err, io.EOF)
}

type failingReaderAt struct {
	data    []byte
	failOff int64
}

func (r *failingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= r.failOff {
		return 0, errors.New("disk gone")
	}
	n := copy(p, r.data[off:])
	if int64(n) < int64(len(p)) {
		return n, io.EOF
	}
	return n, nil
}

func TestPrefetcher_PropagatesReadError(t *testing.T) {
	src := &failingReaderAt{data: make([]byte, 64), failOff: 32}
	p, err := NewPrefetcher(src, 32)
	require.NoError(t, err)

	// First region delivers, the in-flight second fill fails.
	buf := make([]byte, 32)
	_, err = io.ReadFull(p, buf)
	require.NoError(t, err)

	_, err = p.Read(buf)
	require.ErrorContains(t, err, "disk gone")

	// The error is sticky.
	_, err = p.Read(buf)
	require.ErrorContains(t, err, "disk gone")
}

func TestPrefetcher_UnderCursor(t *testing.T) {
	// A record spanning the region boundary must still come out whole.
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("ToClnt,ABC,Buy,100,50,80\n")
	}
	input := sb.String()

	for _, regionSize := range []int{8, 25, 33, 1024} {
		p, err := NewPrefetcher(strings.NewReader(input), regionSize)
		require.NoError(t, err)

		c, err := NewBuffered(p, Config{BufferSize: 128, SWAR: true})
		require.NoError(t, err)

		n := 0
		for {
			ok, err := c.Next()
			require.NoError(t, err)
			if !ok {
				break
			}
			s, err := c.Text(2)
			require.NoError(t, err)
			require.Equal(t, "Buy", s)
			n++
		}
		require.Equal(t, 200, n, "regionSize=%d", regionSize)
	}
}
