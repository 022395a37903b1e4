package resource

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestController_ScanSlots(t *testing.T) {
	c := NewController(Config{MaxConcurrentScans: 1})
	ctx := context.Background()

	require.NoError(t, c.AcquireScan(ctx))

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	require.Error(t, c.AcquireScan(blocked))

	c.ReleaseScan()
	require.NoError(t, c.AcquireScan(ctx))
	c.ReleaseScan()
}

func TestController_NilImposesNoLimits(t *testing.T) {
	var c *Controller
	ctx := context.Background()

	require.NoError(t, c.AcquireScan(ctx))
	c.ReleaseScan()
	require.NoError(t, c.AcquireIO(ctx, 1<<20))
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 64})
	r := NewRateLimitedReader(context.Background(), strings.NewReader("hello world"), c)

	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(buf))
}

func TestRateLimitedReader_TrimsOversizedReads(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 4})
	r := NewRateLimitedReader(context.Background(), strings.NewReader("abcdefgh"), c)

	buf := make([]byte, 64)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.LessOrEqual(t, n, 4)
	require.Greater(t, n, 0)
}
