// Package resource bounds what concurrent scans may consume.
package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentScans is the number of scans allowed to run at once.
	// If 0, defaults to 1.
	MaxConcurrentScans int64

	// IOLimitBytesPerSec caps input throughput across all scans.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages shared scan resources. A nil *Controller imposes
// no limits, so callers never need to branch.
type Controller struct {
	scanSem   *semaphore.Weighted
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentScans <= 0 {
		cfg.MaxConcurrentScans = 1
	}

	c := &Controller{
		scanSem: semaphore.NewWeighted(cfg.MaxConcurrentScans),
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// AcquireScan reserves a scan slot, blocking until one is free or ctx
// is canceled.
func (c *Controller) AcquireScan(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.scanSem.Acquire(ctx, 1)
}

// ReleaseScan releases a scan slot.
func (c *Controller) ReleaseScan() {
	if c == nil {
		return
	}
	c.scanSem.Release(1)
}

// AcquireIO waits until the I/O limit allows the given number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
