package mocks

import (
	"context"
	"sync"

	"github.com/you/expensefront/domain"
)

// MockSessionStore implements domain.SessionStore for testing. Without
// overrides it behaves as an in-memory store.
type MockSessionStore struct {
	SaveFunc  func(ctx context.Context, token string, user *domain.User) error
	LoadFunc  func(ctx context.Context) (string, *domain.User, error)
	ClearFunc func(ctx context.Context) error

	mu         sync.Mutex
	token      string
	user       *domain.User
	SaveCalls  int
	ClearCalls int
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Seed puts a session into the in-memory state
func (m *MockSessionStore) Seed(token string, user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user
}

// Stored returns the in-memory state
func (m *MockSessionStore) Stored() (string, *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.user
}

// Save implements domain.SessionStore
func (m *MockSessionStore) Save(ctx context.Context, token string, user *domain.User) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, token, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user
	return nil
}

// Load implements domain.SessionStore
func (m *MockSessionStore) Load(ctx context.Context) (string, *domain.User, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.user, nil
}

// Clear implements domain.SessionStore
func (m *MockSessionStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
