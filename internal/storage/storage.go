// Package storage provides the keyed store shared by the CLI and the HTTP
// API for the results of concurrent validation passes.
package storage

import "sync"

// Store is a mutex-guarded map keyed by string. Create one with New; the
// zero value has no backing map.
type Store[V any] struct {
	mu     sync.RWMutex
	values map[string]V
}

func New[V any]() *Store[V] {
	return &Store[V]{values: make(map[string]V)}
}

func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, exists := s.values[key]
	return value, exists
}

func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// All returns a copy of the store's contents.
func (s *Store[V]) All() map[string]V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]V, len(s.values))
	for k, v := range s.values {
		result[k] = v
	}
	return result
}

func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
