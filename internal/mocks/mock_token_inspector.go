package mocks

import "github.com/you/expensefront/domain"

// MockTokenInspector implements domain.TokenInspector for testing
type MockTokenInspector struct {
	InspectFunc func(token string) (*domain.TokenInfo, error)
}

// NewMockTokenInspector creates a new MockTokenInspector with default behaviors
func NewMockTokenInspector() *MockTokenInspector {
	return &MockTokenInspector{}
}

// Inspect implements domain.TokenInspector. The default treats every token
// as opaque, which makes the session service hydrate over the network.
func (m *MockTokenInspector) Inspect(token string) (*domain.TokenInfo, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(token)
	}
	return nil, domain.ErrTokenMalformed
}

// Compile-time interface compliance verification
var _ domain.TokenInspector = (*MockTokenInspector)(nil)
