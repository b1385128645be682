package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/ecotrip/internal/domain"
)

// memStore is the in-process implementation of Store.
type memStore struct {
	mu   sync.RWMutex
	data map[Key][]byte
}

// NewMemStore constructs an empty in-memory Store. Data lives as long as the
// process; it is the default backend and the one unit tests use.
func NewMemStore() Store {
	return &memStore{data: make(map[Key][]byte)}
}

func (s *memStore) Get(_ context.Context, key Key) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("repo.memStore.Get: %s: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (s *memStore) Set(_ context.Context, key Key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memStore) Remove(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
