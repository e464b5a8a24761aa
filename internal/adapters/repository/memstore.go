package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/piste/internal/domain/formula"
)

const defaultCapacityHint = 16

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacityHint pre-sizes the underlying map for the expected number of
// concurrent tournaments.
func WithCapacityHint(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.capacityHint = n
		}
	}
}

// MemStore implements Store with a mutex-guarded map. It is safe for
// concurrent use; each stored state still belongs to exactly one engine
// instance.
type MemStore struct {
	mu           sync.RWMutex
	states       map[string]*formula.State
	capacityHint int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{capacityHint: defaultCapacityHint}
	for _, opt := range opts {
		opt(s)
	}
	s.states = make(map[string]*formula.State, s.capacityHint)
	return s
}

// Put stores or replaces the state under its tournament id.
func (s *MemStore) Put(_ context.Context, state *formula.State) error {
	if state == nil {
		return ErrNilState
	}
	if state.TournamentID == "" {
		return ErrNoID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.TournamentID] = state
	return nil
}

// Get returns the state for a tournament id.
func (s *MemStore) Get(_ context.Context, tournamentID string) (*formula.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[tournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %q: %w", tournamentID, ErrNotFound)
	}
	return state, nil
}

// Delete removes a tournament's state.
func (s *MemStore) Delete(_ context.Context, tournamentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, tournamentID)
}

// IDs lists the stored tournament ids.
func (s *MemStore) IDs(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of tournaments tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
