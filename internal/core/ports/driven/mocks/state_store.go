package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/tokend/internal/core/domain"
)

// MockStateStore is a mock implementation of StateStore for testing
type MockStateStore struct {
	mu     sync.Mutex
	states map[string]*domain.AuthState

	// Error injection
	SaveErr    error
	ConsumeErr error
	PurgeErr   error

	// LastPurgeCutoff records the cutoff of the most recent Purge call.
	LastPurgeCutoff time.Time
}

// NewMockStateStore creates a new MockStateStore
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{
		states: make(map[string]*domain.AuthState),
	}
}

func (m *MockStateStore) Save(ctx context.Context, state *domain.AuthState) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.Value] = state
	return nil
}

func (m *MockStateStore) Consume(ctx context.Context, value string) (bool, error) {
	if m.ConsumeErr != nil {
		return false, m.ConsumeErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[value]
	if !ok {
		return false, nil
	}
	delete(m.states, value)
	if time.Now().After(state.ExpiresAt) {
		return false, nil
	}
	return true, nil
}

func (m *MockStateStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.PurgeErr != nil {
		return 0, m.PurgeErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPurgeCutoff = cutoff

	var purged int64
	for value, state := range m.states {
		if state.CreatedAt.Before(cutoff) {
			delete(m.states, value)
			purged++
		}
	}
	return purged, nil
}

// Len returns the number of stored states.
func (m *MockStateStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}
