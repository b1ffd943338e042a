// Package memory provides an in-memory StateStore, the default persistence
// sink for tests and single-process hosts.
package memory

import (
	"context"
	"sync"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// Store keeps session drafts in a map. Values are deep-copied on both Save
// and Load so callers never share mutable state with the store.
type Store struct {
	mu   sync.RWMutex
	data map[string]*domain.SessionState
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string]*domain.SessionState)}
}

// Save stores a copy of the state under the handle.
func (s *Store) Save(ctx context.Context, handle string, state *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[handle] = state.Clone()
	return nil
}

// Load returns a copy of the stored state.
func (s *Store) Load(ctx context.Context, handle string) (*domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.data[handle]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Clone(), nil
}

// Delete removes the stored state. Absent handles are a no-op.
func (s *Store) Delete(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, handle)
	return nil
}
