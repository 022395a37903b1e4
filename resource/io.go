package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader with the controller's I/O limit.
type RateLimitedReader struct {
	r     io.Reader
	rc    *Controller
	ctx   context.Context
	burst int
}

// NewRateLimitedReader creates a reader that waits on the controller's
// I/O budget before each read.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	burst := 0
	if rc != nil && rc.ioLimiter != nil {
		burst = rc.ioLimiter.Burst()
	}
	return &RateLimitedReader{r: r, rc: rc, ctx: ctx, burst: burst}
}

func (r *RateLimitedReader) Read(p []byte) (int, error) {
	// A request larger than the burst can never be granted; trim it so
	// large scan buffers still work under small limits.
	if r.burst > 0 && len(p) > r.burst {
		p = p[:r.burst]
	}
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
