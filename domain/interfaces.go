package domain

import "context"

// SessionStore defines durable persistence for the current session. Only the
// session service may call these; page-level consumers go through snapshots.
type SessionStore interface {
	// Save persists both values. A partial write is treated as failed by the
	// caller, which follows up with Clear.
	Save(ctx context.Context, token string, user *User) error
	// Load returns the persisted token and user. Malformed stored data is
	// indistinguishable from nothing stored. The error is reserved for
	// backend unavailability (e.g. redis down), never for corrupt payloads.
	Load(ctx context.Context) (string, *User, error)
	// Clear removes both values unconditionally. Idempotent.
	Clear(ctx context.Context) error
}

// AuthAPI defines the backend authentication endpoints the client consumes
type AuthAPI interface {
	Register(ctx context.Context, reg Registration) (*Session, error)
	Login(ctx context.Context, creds Credentials) (*Session, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) (*Session, error)
	UpdatePassword(ctx context.Context, token string, upd PasswordUpdate) (*Session, error)
	UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) (*User, error)
}

// TokenInspector reads claims out of a credential token without verifying the
// signature. The client holds no signing secret; verification is the
// backend's job. Used only to discard locally expired tokens at bootstrap.
type TokenInspector interface {
	Inspect(token string) (*TokenInfo, error)
}

// TokenInfo is the subset of claims the client cares about
type TokenInfo struct {
	Role      Role
	IssuedAt  int64
	ExpiresAt int64
}

// RoutePolicy answers whether a role may view a given path
type RoutePolicy interface {
	Allowed(role Role, path string) (bool, error)
}

// AuthListener receives auth transition events. Listeners are invoked
// synchronously after a transition commits and must not call back into the
// session service from the same goroutine.
type AuthListener func(event *AuthEvent)
