package memory

import (
	"sync"

	"github.com/custodia-labs/mission-control/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Save only counts calls, so tests
// can assert that a change was persisted.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	saves  int
}

// NewConfigStore creates an empty config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// lookup returns the value under key when it has type T.
func lookup[T any](s *ConfigStore, key string) (T, bool) {
	val, _ := s.Get(key)
	v, ok := val.(T)
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := lookup[string](s, key)
	return v
}

// GetInt also accepts int64 and float64, the types a decoded TOML or
// JSON document yields.
func (s *ConfigStore) GetInt(key string) int {
	if v, ok := lookup[int](s, key); ok {
		return v
	}
	if v, ok := lookup[int64](s, key); ok {
		return int(v)
	}
	v, _ := lookup[float64](s, key)
	return int(v)
}

func (s *ConfigStore) GetBool(key string) bool {
	v, _ := lookup[bool](s, key)
	return v
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Save() error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return nil
}

// Saves reports how many times Save was called.
func (s *ConfigStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func (s *ConfigStore) Load() error { return nil }

func (s *ConfigStore) Path() string { return ":memory:" }
