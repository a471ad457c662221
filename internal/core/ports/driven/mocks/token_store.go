package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/tokend/internal/core/domain"
	"github.com/custodia-labs/tokend/internal/core/ports/driven"
)

// MockTokenStore is a mock implementation of TokenStore for testing
type MockTokenStore struct {
	mu         sync.RWMutex
	records    []*domain.Credential
	nextID     int64
	maxRecords int

	// Error injection
	UpsertErr  error
	CurrentErr error
	DeleteErr  error

	// LastDeleteCutoff records the cutoff of the most recent
	// DeleteInactiveBefore call.
	LastDeleteCutoff time.Time
}

// NewMockTokenStore creates a new MockTokenStore
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{
		nextID:     1,
		maxRecords: 10,
	}
}

func (m *MockTokenStore) Upsert(ctx context.Context, tok driven.TokenUpsert) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	// Refresh path: update the active record holding this refresh token.
	for i := len(m.records) - 1; i >= 0; i-- {
		rec := m.records[i]
		if rec.Active && rec.RefreshToken == tok.RefreshToken {
			rec.AccessToken = tok.AccessToken
			rec.ExpiresAt = expiresAt
			rec.Scope = tok.Scope
			rec.TokenType = tok.TokenType
			return nil
		}
	}

	m.records = append(m.records, &domain.Credential{
		ID:           m.nextID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiresAt,
		Scope:        tok.Scope,
		TokenType:    tok.TokenType,
		AccountEmail: tok.AccountEmail,
		CreatedAt:    time.Now(),
		Active:       true,
	})
	m.nextID++

	// Only the newest maxRecords stay active.
	active := 0
	for i := len(m.records) - 1; i >= 0; i-- {
		if !m.records[i].Active {
			continue
		}
		active++
		if active > m.maxRecords {
			m.records[i].Active = false
		}
	}
	return nil
}

func (m *MockTokenStore) Current(ctx context.Context) (*domain.Credential, error) {
	if m.CurrentErr != nil {
		return nil, m.CurrentErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].Active {
			cred := *m.records[i]
			return &cred, nil
		}
	}
	return nil, nil
}

func (m *MockTokenStore) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastDeleteCutoff = cutoff

	var kept []*domain.Credential
	var deleted int64
	for _, rec := range m.records {
		if !rec.Active && rec.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	m.records = kept
	return deleted, nil
}

// ActiveCount returns the number of active records.
func (m *MockTokenStore) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, rec := range m.records {
		if rec.Active {
			count++
		}
	}
	return count
}

// All returns every stored record in insertion order.
func (m *MockTokenStore) All() []*domain.Credential {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Credential, len(m.records))
	copy(out, m.records)
	return out
}
