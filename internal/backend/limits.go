package backend

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/settings"
)

// sharedFetchTimeout bounds a config request that outlives the caller who started it.
const sharedFetchTimeout = 10 * time.Second

// LimitsCache keeps the last successful limits for ttl. Concurrent misses
// share a single request to the config endpoint. Failures are not cached.
// The shared request is detached from the cancellation of the caller that
// started it; each caller stops waiting when its own context is done.
type LimitsCache struct {
	src     settings.LimitsSource
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	limits  model.Limits
	fetched time.Time
	valid   bool
}

// NewLimitsCache wraps src. A ttl of zero caches forever.
func NewLimitsCache(src settings.LimitsSource, ttl time.Duration) *LimitsCache {
	return &LimitsCache{src: src, ttl: ttl, timeout: sharedFetchTimeout, now: time.Now}
}

func (c *LimitsCache) Limits(ctx context.Context) (model.Limits, error) {
	if limits, ok := c.cached(); ok {
		return limits, nil
	}

	ch := c.group.DoChan("limits", func() (any, error) {
		if limits, ok := c.cached(); ok {
			return limits, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		limits, err := c.src.Limits(fetchCtx)
		if err != nil {
			return model.Limits{}, err
		}

		c.mu.Lock()
		c.limits, c.fetched, c.valid = limits, c.now(), true
		c.mu.Unlock()
		return limits, nil
	})

	select {
	case <-ctx.Done():
		return model.Limits{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Limits{}, res.Err
		}
		return res.Val.(model.Limits), nil
	}
}

func (c *LimitsCache) cached() (model.Limits, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		return model.Limits{}, false
	}
	if c.ttl > 0 && c.now().Sub(c.fetched) > c.ttl {
		return model.Limits{}, false
	}
	return c.limits, true
}
