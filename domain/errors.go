package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session has expired")
	ErrUnknownRole        = errors.New("unknown role")
	// ErrSuperseded reports that an operation completed after a newer one
	// had already been initiated; its result was discarded and the session
	// state does not reflect it.
	ErrSuperseded = errors.New("superseded by a newer operation")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Validation errors, caught client-side before any network call
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("invalid email address")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
)

// Routing errors
var (
	ErrRouteDenied = errors.New("route access denied")
)

// APIError is the normalized form of any non-2xx backend response or
// transport failure. Callers rely only on Message being human-readable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ErrorMessage extracts the human-readable message from any error returned by
// the auth API client, falling back to the plain error string.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
