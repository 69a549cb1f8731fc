// Package shell holds the generator page state: the requested count, the
// length settings and the last accepted password result.
package shell

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/passgen/passgen-frontend/internal/fetcher"
	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/settings"
	"github.com/passgen/passgen-frontend/internal/validation"
)

// Status is the display state of the password table.
type Status int

const (
	StatusIdle Status = iota
	StatusInvalid
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInvalid:
		return "invalid"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the shell.
type State struct {
	Count     string
	Status    Status
	Passwords []model.Password
	Err       error
	Seq       uint64
}

func (s State) Valid() bool   { return s.Status != StatusInvalid }
func (s State) Loading() bool { return s.Status == StatusLoading }
func (s State) Failed() bool  { return s.Status == StatusFailed }

// Shell wires the count field and the settings panel to the fetcher.
// Methods that change input return the Call to run, or nil if nothing
// has to be fetched. Results go back in through Apply.
type Shell struct {
	store   settings.Store
	panel   *settings.Panel
	fetcher *fetcher.Fetcher

	mu    sync.Mutex
	state State
}

// New reads the count from the store. Nothing is fetched until Refresh.
func New(store settings.Store, panel *settings.Panel, f *fetcher.Fetcher) *Shell {
	return &Shell{
		store:   store,
		panel:   panel,
		fetcher: f,
		state: State{
			Count: store.Get(settings.ParamCount, strconv.Itoa(model.DefaultCount)),
		},
	}
}

func (s *Shell) Panel() *settings.Panel { return s.panel }

// SetCount stores a new count and refreshes.
func (s *Shell) SetCount(value string) *fetcher.Call {
	s.store.Set(settings.ParamCount, value)

	s.mu.Lock()
	s.state.Count = value
	s.mu.Unlock()

	return s.Refresh()
}

// EditMin changes the minimum length and refreshes.
func (s *Shell) EditMin(value string) *fetcher.Call {
	s.panel.EditMin(value)
	return s.Refresh()
}

// EditMax changes the maximum length and refreshes. A rejected edit changes
// nothing and returns the panel's error.
func (s *Shell) EditMax(value string) (*fetcher.Call, error) {
	if err := s.panel.EditMax(value); err != nil {
		return nil, err
	}
	return s.Refresh(), nil
}

// Navigate re-reads everything from the store after back/forward navigation.
// A location without a count keeps the current one.
func (s *Shell) Navigate() *fetcher.Call {
	s.panel.Restore()

	s.mu.Lock()
	s.state.Count = s.store.Get(settings.ParamCount, s.state.Count)
	s.mu.Unlock()

	return s.Refresh()
}

// Refresh issues a fetch for the current count and settings. An invalid
// count clears the table, supersedes pending fetches and returns nil.
func (s *Shell) Refresh() *fetcher.Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := validation.ParseBounded(s.state.Count, model.MinCount, model.MaxCount)
	if err != nil {
		s.fetcher.Invalidate()
		s.state.Status = StatusInvalid
		s.state.Passwords = nil
		s.state.Err = err
		s.state.Seq = s.fetcher.Latest()
		return nil
	}

	call := s.fetcher.Issue(model.GenerateRequest{Count: count, Settings: s.panel.Settings()})
	s.state.Status = StatusLoading
	s.state.Err = nil
	s.state.Seq = call.Seq
	return call
}

// Apply stores the result of a call and reports whether it was accepted.
// Results of superseded calls are ignored.
func (s *Shell) Apply(res fetcher.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetcher.Accept(res) {
		return false
	}

	if res.Err != nil {
		slog.Error("failed to fetch passwords", "count", res.Request.Count, "error", res.Err)
		s.state.Status = StatusFailed
		s.state.Passwords = nil
		s.state.Err = res.Err
		return true
	}

	s.state.Status = StatusReady
	s.state.Passwords = res.Passwords
	s.state.Err = nil
	return true
}

// State returns a snapshot.
func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
