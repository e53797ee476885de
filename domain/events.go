package domain

import "time"

// AuthEventType defines the type of auth transition event
type AuthEventType string

const (
	// Session lifecycle events
	UserLoginEvent          AuthEventType = "USER_LOGIN"
	UserLoginFailureEvent   AuthEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent         AuthEventType = "USER_LOGOUT"
	SessionRestoredEvent    AuthEventType = "SESSION_RESTORED"
	SessionHydratedEvent    AuthEventType = "SESSION_HYDRATED"
	SessionHydrationFailure AuthEventType = "SESSION_HYDRATION_FAILED"
	ProfileUpdatedEvent     AuthEventType = "PROFILE_UPDATED"
	PasswordUpdatedEvent    AuthEventType = "PASSWORD_UPDATED"

	// Navigation signals emitted by transitions
	RedirectRequestedEvent AuthEventType = "REDIRECT_REQUESTED"
)

// AuthEvent represents a committed session transition. The router and shell
// subscribe to these to re-resolve the current route.
type AuthEvent struct {
	EventType AuthEventType `json:"event_type"`
	UserID    string        `json:"user_id,omitempty"`
	Email     string        `json:"email,omitempty"`
	Role      Role          `json:"role,omitempty"`
	Target    string        `json:"target,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	ErrorMsg  string        `json:"error_msg,omitempty"`
	Success   bool          `json:"success"`
}

// NewAuthEvent creates a new auth event with common fields populated
func NewAuthEvent(eventType AuthEventType) *AuthEvent {
	return &AuthEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithUser sets the identity fields from a user record
func (e *AuthEvent) WithUser(user *User) *AuthEvent {
	if user != nil {
		e.UserID = user.ID
		e.Email = user.Email
		e.Role = user.Role
	}
	return e
}

// WithTarget sets the redirect target path
func (e *AuthEvent) WithTarget(target string) *AuthEvent {
	e.Target = target
	return e
}

// WithError marks the event failed and records the message
func (e *AuthEvent) WithError(err error) *AuthEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
