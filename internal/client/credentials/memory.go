package credentials

import (
	"context"
	"sync"
)

// MemoryStore keeps the pair in process memory only.
type MemoryStore struct {
	mu   sync.RWMutex
	pair Pair
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(p Pair) *MemoryStore {
	return &MemoryStore{pair: p}
}

func (s *MemoryStore) Get(_ context.Context) (Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair, nil
}

func (s *MemoryStore) Set(_ context.Context, p Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = p
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = Pair{}
	return nil
}
