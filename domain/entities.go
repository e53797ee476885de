package domain

import "fmt"

// Role is the closed set of user roles. All authorization decisions in the
// router and guards switch on this value only.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSalesRep Role = "sales_rep"
)

// ParseRole converts a wire-format role string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSalesRep:
		return RoleSalesRep, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSalesRep
}

// User represents the authenticated user as returned by the backend
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the durable token+user pair representing a logged-in identity.
// Invariant: User may only be present when Token is present.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Credentials represents login input
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration represents sign-up input
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// ProfileUpdate carries the mutable profile fields
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PasswordUpdate carries a password change for an authenticated user
type PasswordUpdate struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthState enumerates the session lifecycle states
type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateHydrating
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthSnapshot is a point-in-time copy of the session state handed to guards
// and the router. Consumers never mutate it.
type AuthSnapshot struct {
	State   AuthState
	Token   string
	User    *User
	Loading bool
	Err     string

	// Verified is false while the user record came from the local cache and
	// has not been confirmed by the backend in this process lifetime.
	Verified bool
}

// IsAuthenticated reports whether a credential token is present
func (s AuthSnapshot) IsAuthenticated() bool {
	return s.Token != ""
}

// HasRole reports whether an authenticated user carries the given role
func (s AuthSnapshot) HasRole(role Role) bool {
	return s.User != nil && s.User.Role == role
}
