package services

import (
	"strings"

	"github.com/you/expensefront/domain"
)

// validateCredentials is the pre-flight check on login input. Failures here
// never reach the backend or the auth state.
func validateCredentials(creds domain.Credentials) error {
	email := strings.TrimSpace(creds.Email)
	if email == "" {
		return domain.ErrEmailRequired
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return domain.ErrEmailInvalid
	}
	if creds.Password == "" {
		return domain.ErrPasswordRequired
	}
	return nil
}
