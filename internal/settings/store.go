// Package settings keeps user-facing settings in a key-value store and owns
// the password length bounds shown next to the generator.
package settings

import "sync"

// Query parameter names persisted in the store.
const (
	ParamCount     = "num"
	ParamMinLength = "minPasswordLength"
	ParamMaxLength = "maxPasswordLength"
)

// Store is a string key-value store for settings. The web frontend backs it
// with the page URL, the terminal frontend with a navigation history and the
// CLI with a sqlite file.
type Store interface {
	// Get returns the named value, or fallback if it was never set.
	Get(name, fallback string) string
	// Set writes or overwrites the named value.
	Set(name, value string)
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a MemoryStore seeded with the given values.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

func (s *MemoryStore) Get(name, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.values[name]; ok {
		return v
	}
	return fallback
}

func (s *MemoryStore) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}
