// Package resource limits the load that queries put on a shared process.
//
// A Controller can be shared by any number of batches: the concurrency and
// rate limits then apply to all of them together.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentQueries is the maximum number of queries running at once.
	// If 0, unlimited.
	MaxConcurrentQueries int64

	// QueriesPerSecond is the maximum rate at which queries start.
	// If 0, unlimited.
	QueriesPerSecond float64

	// Burst is the number of queries that may start back to back under the
	// rate limit. If 0, defaults to 1.
	Burst int
}

// Controller admits queries under the configured limits.
// A nil *Controller admits everything.
type Controller struct {
	cfg Config

	// Concurrency
	slots *semaphore.Weighted // nil if unlimited

	// Rate
	limiter *rate.Limiter // nil if unlimited

	active   atomic.Int64
	admitted atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrentQueries > 0 {
		c.slots = semaphore.NewWeighted(cfg.MaxConcurrentQueries)
	}

	if cfg.QueriesPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSecond), cfg.Burst)
	}

	return c
}

// Config returns the limits of c.
func (c *Controller) Config() Config { return c.cfg }

// Acquire blocks until a query may start or ctx is canceled. Every
// successful Acquire must be paired with a Release.
func (c *Controller) Acquire(ctx context.Context) error {
	if c == nil {
		return nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if c.slots != nil {
		if err := c.slots.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	c.active.Add(1)
	c.admitted.Add(1)
	return nil
}

// TryAcquire admits a query without blocking.
// Returns true if admitted, false if a limit would be exceeded.
func (c *Controller) TryAcquire() bool {
	if c == nil {
		return true
	}

	if c.slots != nil && !c.slots.TryAcquire(1) {
		return false
	}

	if c.limiter != nil && !c.limiter.Allow() {
		if c.slots != nil {
			c.slots.Release(1)
		}
		return false
	}

	c.active.Add(1)
	c.admitted.Add(1)
	return true
}

// Release ends a query admitted by Acquire or TryAcquire.
func (c *Controller) Release() {
	if c == nil {
		return
	}

	if c.slots != nil {
		c.slots.Release(1)
	}
	c.active.Add(-1)
}

// Active returns the number of queries currently admitted.
func (c *Controller) Active() int64 {
	if c == nil {
		return 0
	}
	return c.active.Load()
}

// Admitted returns the total number of queries admitted so far.
func (c *Controller) Admitted() int64 {
	if c == nil {
		return 0
	}
	return c.admitted.Load()
}
