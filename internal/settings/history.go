package settings

import (
	"fmt"
	"net/url"
	"sync"
)

// History is a Store backed by the query string of a location, with a
// navigation history like a browser tab. Every Set pushes a new entry so
// Back and Forward can restore earlier values.
type History struct {
	mu      sync.Mutex
	entries []url.URL
	index   int
}

// NewHistory parses rawURL and starts a history with it as the only entry.
func NewHistory(rawURL string) (*History, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", rawURL, err)
	}
	return HistoryAt(u), nil
}

// HistoryAt starts a history at a copy of u.
func HistoryAt(u *url.URL) *History {
	return &History{entries: []url.URL{*u}}
}

func (h *History) Get(name, fallback string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	q := h.entries[h.index].Query()
	if !q.Has(name) {
		return fallback
	}
	return q.Get(name)
}

// Set pushes a new entry with name set to value. Forward entries are dropped.
func (h *History) Set(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := h.entries[h.index]
	q := next.Query()
	q.Set(name, value)
	next.RawQuery = q.Encode()

	h.entries = append(h.entries[:h.index+1], next)
	h.index++
}

// Back moves to the previous entry and reports whether it moved.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves to the next entry and reports whether it moved.
func (h *History) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Location returns a copy of the current entry.
func (h *History) Location() *url.URL {
	h.mu.Lock()
	defer h.mu.Unlock()

	u := h.entries[h.index]
	return &u
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
