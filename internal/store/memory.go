package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. It is the default backend for tests
// and for running the gateway without external infrastructure.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns the value stored under key
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Copy so callers cannot mutate the stored slice
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value under key
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

// Delete removes key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Keys lists every key currently present
func (s *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// ClearAll removes every key except those listed
func (s *MemoryStore) ClearAll(ctx context.Context, except ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := make(map[string]bool, len(except))
	for _, k := range except {
		keep[k] = true
	}

	for k := range s.data {
		if !keep[k] {
			delete(s.data, k)
		}
	}
	return nil
}

// Close is a no-op for the memory backend
func (s *MemoryStore) Close() error {
	return nil
}
