package mocks

import (
	"context"

	"github.com/you/expensefront/domain"
)

// MockAuthAPI implements domain.AuthAPI for testing
type MockAuthAPI struct {
	RegisterFunc       func(ctx context.Context, reg domain.Registration) (*domain.Session, error)
	LoginFunc          func(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	LogoutFunc         func(ctx context.Context, token string) error
	MeFunc             func(ctx context.Context, token string) (*domain.User, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, resetToken, newPassword string) (*domain.Session, error)
	UpdatePasswordFunc func(ctx context.Context, token string, upd domain.PasswordUpdate) (*domain.Session, error)
	UpdateProfileFunc  func(ctx context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error)
}

// NewMockAuthAPI creates a new MockAuthAPI with default behaviors
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

// Register implements domain.AuthAPI
func (m *MockAuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	role := reg.Role
	if role == "" {
		role = domain.RoleSalesRep
	}
	return &domain.Session{
		Token: "mock_token",
		User:  &domain.User{ID: "1", Name: reg.Name, Email: reg.Email, Role: role},
	}, nil
}

// Login implements domain.AuthAPI
func (m *MockAuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return &domain.Session{
		Token: "mock_token",
		User:  &domain.User{ID: "1", Email: creds.Email, Role: domain.RoleSalesRep},
	}, nil
}

// Logout implements domain.AuthAPI
func (m *MockAuthAPI) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// Me implements domain.AuthAPI
func (m *MockAuthAPI) Me(ctx context.Context, token string) (*domain.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, token)
	}
	return &domain.User{ID: "1", Email: "test@example.com", Role: domain.RoleSalesRep}, nil
}

// ForgotPassword implements domain.AuthAPI
func (m *MockAuthAPI) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

// ResetPassword implements domain.AuthAPI
func (m *MockAuthAPI) ResetPassword(ctx context.Context, resetToken, newPassword string) (*domain.Session, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, resetToken, newPassword)
	}
	return &domain.Session{Token: "mock_token_rotated"}, nil
}

// UpdatePassword implements domain.AuthAPI
func (m *MockAuthAPI) UpdatePassword(ctx context.Context, token string, upd domain.PasswordUpdate) (*domain.Session, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, token, upd)
	}
	return &domain.Session{Token: "mock_token_rotated"}, nil
}

// UpdateProfile implements domain.AuthAPI
func (m *MockAuthAPI) UpdateProfile(ctx context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, token, upd)
	}
	return &domain.User{ID: "1", Name: upd.Name, Email: upd.Email, Role: domain.RoleSalesRep}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthAPI = (*MockAuthAPI)(nil)
