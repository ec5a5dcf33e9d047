package artifacts

import (
	"context"
	"sync"
)

// InMemoryStore holds artifacts in process memory, for tests and local runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string][]byte)}
}

func (s *InMemoryStore) Save(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = append([]byte(nil), data...)
	return nil
}

func (s *InMemoryStore) Open(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *InMemoryStore) Remove(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[name]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, name)
	return nil
}
