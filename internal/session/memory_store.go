package session

import (
	"context"
	"sync"
	"time"

	"github.com/ecocenter/visit-platform/internal/conversation"
)

// MemoryStore is an in-process session store, the default for single-instance
// deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*State)}
}

// Get returns a copy of the stored state so callers can mutate freely.
func (s *MemoryStore) Get(ctx context.Context, id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return state.clone(), nil
}

// Save stores a copy of the state.
func (s *MemoryStore) Save(ctx context.Context, state *State) error {
	cp := state.clone()
	cp.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.sessions[state.ID] = cp
	s.mu.Unlock()
	return nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *State) clone() *State {
	cp := *s
	cp.Transcript = append([]conversation.ChatMessage(nil), s.Transcript...)
	if s.PendingAutoFill != nil {
		cp.PendingAutoFill = make(map[string]string, len(s.PendingAutoFill))
		for k, v := range s.PendingAutoFill {
			cp.PendingAutoFill[k] = v
		}
	}
	return &cp
}
