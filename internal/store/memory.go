package store

import (
	"context"
	"sync"

	"budsjetto/internal/core"
)

// MemoryStore keeps the state document in memory only. It backs tests and
// the throwaway "memory" backend.
type MemoryStore struct {
	mu    sync.Mutex
	state core.AppState
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: core.DefaultAppState()}
}

func (s *MemoryStore) Load(_ context.Context) (core.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, state core.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	s.saves++
	return nil
}

// Saves returns how many times Save has been called. Tests use it to assert
// the persist-on-every-mutation contract.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
