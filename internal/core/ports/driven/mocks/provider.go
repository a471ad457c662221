package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/tokend/internal/core/ports/driven"
)

// MockProvider is a mock implementation of Provider for testing
type MockProvider struct {
	mu sync.Mutex

	// ExchangeToken is returned from Exchange when ExchangeErr is nil.
	ExchangeToken *driven.Token
	ExchangeErr   error

	// RefreshToken is returned from Refresh when RefreshErr is nil.
	RefreshToken *driven.Token
	RefreshErr   error

	LastCode         string
	LastRefreshToken string
	RefreshCalls     int
}

// NewMockProvider creates a new MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) AuthCodeURL(state string) string {
	return "https://auth.example.com/authorize?state=" + state
}

func (m *MockProvider) Exchange(ctx context.Context, code string) (*driven.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastCode = code
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return m.ExchangeToken, nil
}

func (m *MockProvider) Refresh(ctx context.Context, refreshToken string) (*driven.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRefreshToken = refreshToken
	m.RefreshCalls++
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	return m.RefreshToken, nil
}
