// Package fetcher issues password requests with sequence numbers so that only
// the response to the most recent request is ever applied.
package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/passgen/passgen-frontend/internal/metrics"
	"github.com/passgen/passgen-frontend/internal/model"
)

// ErrStale is the error of a call that was superseded before it started.
var ErrStale = errors.New("superseded by a newer request")

// Transport is one binding of the password request, e.g. the REST client.
type Transport interface {
	Passwords(ctx context.Context, req model.GenerateRequest) ([]model.Password, error)
}

// Result is the outcome of one Call.
type Result struct {
	Seq       uint64
	Request   model.GenerateRequest
	Passwords []model.Password
	Err       error
}

// Fetcher hands out sequence numbers and cancels the in-flight call when a
// newer one is issued.
type Fetcher struct {
	transport Transport
	metrics   *metrics.Metrics

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMetrics counts dropped stale results.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// New creates a Fetcher on top of t.
func New(t Transport, opts ...Option) *Fetcher {
	f := &Fetcher{transport: t}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Call is an issued but not yet executed request.
type Call struct {
	Seq     uint64
	Request model.GenerateRequest

	f *Fetcher
}

// Issue reserves the next sequence number for req. Any call still in flight
// is cancelled and its result will no longer be accepted.
func (f *Fetcher) Issue(req model.GenerateRequest) *Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.advance()
	return &Call{Seq: f.seq, Request: req, f: f}
}

// Invalidate supersedes all issued calls without starting a new one.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advance()
}

func (f *Fetcher) advance() {
	f.seq++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// Latest returns the most recently issued sequence number.
func (f *Fetcher) Latest() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// Accept reports whether res belongs to the latest call. Stale results are
// counted and must be dropped by the caller.
func (f *Fetcher) Accept(res Result) bool {
	if res.Seq == f.Latest() {
		return true
	}
	f.metrics.StaleResult()
	slog.Debug("dropping stale password result", "seq", res.Seq, "count", res.Request.Count)
	return false
}

// Run executes the call. It blocks until the transport returns or ctx is
// cancelled, either by the caller or by a newer Issue.
func (c *Call) Run(ctx context.Context) Result {
	res := Result{Seq: c.Seq, Request: c.Request}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !c.f.register(c.Seq, cancel) {
		res.Err = ErrStale
		return res
	}
	defer c.f.unregister(c.Seq)

	res.Passwords, res.Err = c.f.transport.Passwords(ctx, c.Request)
	return res
}

func (f *Fetcher) register(seq uint64, cancel context.CancelFunc) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		return false
	}
	f.cancel = cancel
	return true
}

func (f *Fetcher) unregister(seq uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq == f.seq {
		f.cancel = nil
	}
}
