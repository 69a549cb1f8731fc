package backend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passgen/passgen-frontend/internal/model"
)

type countingSource struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (s *countingSource) Limits(context.Context) (model.Limits, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return model.Limits{}, s.err
	}
	return model.Limits{Min: 10, Max: 50}, nil
}

func TestLimitsCache_CachesWithinTTL(t *testing.T) {
	src := &countingSource{}
	cache := NewLimitsCache(src, time.Minute)

	now := time.Now()
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		limits, err := cache.Limits(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.Limits{Min: 10, Max: 50}, limits)
	}
	assert.Equal(t, int32(1), src.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err := cache.Limits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLimitsCache_DoesNotCacheErrors(t *testing.T) {
	src := &countingSource{err: errors.New("down")}
	cache := NewLimitsCache(src, time.Minute)

	_, err := cache.Limits(context.Background())
	assert.Error(t, err)
	_, err = cache.Limits(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLimitsCache_SharesConcurrentMisses(t *testing.T) {
	src := &countingSource{delay: 50 * time.Millisecond}
	cache := NewLimitsCache(src, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Limits(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

// blockingSource answers once release is closed, or fails when its context ends first.
type blockingSource struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *blockingSource) Limits(ctx context.Context) (model.Limits, error) {
	if s.calls.Add(1) == 1 {
		close(s.started)
	}
	select {
	case <-ctx.Done():
		return model.Limits{}, ctx.Err()
	case <-s.release:
		return model.Limits{Min: 10, Max: 50}, nil
	}
}

func TestLimitsCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	cache := NewLimitsCache(src, time.Minute)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Limits(firstCtx)
		firstErr <- err
	}()
	<-src.started

	type result struct {
		limits model.Limits
		err    error
	}
	second := make(chan result, 1)
	go func() {
		limits, err := cache.Limits(context.Background())
		second <- result{limits, err}
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(src.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, model.Limits{Min: 10, Max: 50}, res.limits)
	assert.Equal(t, int32(1), src.calls.Load())

	// the detached request still filled the cache
	limits, err := cache.Limits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Limits{Min: 10, Max: 50}, limits)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestLimitsCache_SharedRequestTimesOut(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	cache := NewLimitsCache(src, time.Minute)
	cache.timeout = 20 * time.Millisecond

	_, err := cache.Limits(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
