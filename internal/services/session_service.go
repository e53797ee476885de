package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/you/expensefront/domain"
)

// Redirects names the navigation targets session transitions emit. The
// container wires these from the route table so the service never hardcodes
// paths.
type Redirects struct {
	Login     string
	AdminHome string
	SalesHome string
}

func (r Redirects) withDefaults() Redirects {
	if r.Login == "" {
		r.Login = "/login"
	}
	if r.AdminHome == "" {
		r.AdminHome = "/admin/dashboard"
	}
	if r.SalesHome == "" {
		r.SalesHome = "/dashboard"
	}
	return r
}

// SessionService owns the process-wide auth state machine:
//
//	Unauthenticated -> Hydrating -> Authenticated -> Unauthenticated
//
// It is the single writer of the session store. Every operation takes a
// sequence number at initiation; a completion commits only if it is still the
// most recently initiated operation, so a slow response from a superseded
// call can never overwrite newer state.
type SessionService struct {
	store     domain.SessionStore
	api       domain.AuthAPI
	inspector domain.TokenInspector
	logger    *slog.Logger
	redirects Redirects

	mu       sync.Mutex
	seq      uint64
	token    string
	user     *domain.User
	state    domain.AuthState
	loading  bool
	errMsg   string
	verified bool

	listeners []domain.AuthListener
}

// NewSessionService creates the auth state machine
func NewSessionService(
	store domain.SessionStore,
	api domain.AuthAPI,
	inspector domain.TokenInspector,
	logger *slog.Logger,
	redirects Redirects,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:     store,
		api:       api,
		inspector: inspector,
		logger:    logger,
		redirects: redirects.withDefaults(),
		state:     domain.StateUnauthenticated,
	}
}

// Subscribe registers a listener for committed transitions. Listeners run
// synchronously after the state change and must not call back into the
// service from the same goroutine.
func (s *SessionService) Subscribe(listener domain.AuthListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Snapshot returns a copy of the current auth state
func (s *SessionService) Snapshot() domain.AuthSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionService) snapshotLocked() domain.AuthSnapshot {
	snap := domain.AuthSnapshot{
		State:    s.state,
		Token:    s.token,
		Loading:  s.loading,
		Err:      s.errMsg,
		Verified: s.verified,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// HasRole reports whether the current user carries the given role
func (s *SessionService) HasRole(role domain.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == role
}

// begin starts a new operation: bumps the sequence, marks the state loading
// and clears any stale error. Returns the operation's sequence number and
// the token it started from.
func (s *SessionService) begin() (uint64, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	s.errMsg = ""
	return s.seq, s.token
}

// commit applies fn if op is still the latest initiated operation. Events
// returned by fn are emitted after the lock is released. Store side effects
// belong inside fn so a stale completion cannot touch persistence either.
func (s *SessionService) commit(op uint64, fn func() []*domain.AuthEvent) bool {
	s.mu.Lock()
	if op != s.seq {
		s.mu.Unlock()
		s.logger.Debug("discarding superseded auth transition", "op", op, "latest", s.seq)
		return false
	}
	events := fn()
	listeners := make([]domain.AuthListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, event := range events {
		for _, listener := range listeners {
			listener(event)
		}
	}
	return true
}

// Bootstrap rehydrates auth state from the session store. Called once at
// startup, before the first route resolution.
func (s *SessionService) Bootstrap(ctx context.Context) error {
	op, _ := s.begin()

	token, user, err := s.store.Load(ctx)
	if err != nil {
		// Store backend unavailable: start logged out rather than failing
		s.logger.Warn("session store unavailable, starting unauthenticated", "error", err)
		token, user = "", nil
	}

	if token == "" {
		s.commit(op, func() []*domain.AuthEvent {
			s.resetLocked()
			return nil
		})
		return nil
	}

	// Peek at the token before trusting it: a locally expired token is
	// cleared without a network round-trip. Opaque tokens fall through to
	// normal hydration.
	if s.inspector != nil {
		if _, err := s.inspector.Inspect(token); errors.Is(err, domain.ErrTokenExpired) {
			s.commit(op, func() []*domain.AuthEvent {
				s.clearStoreLocked(ctx)
				s.resetLocked()
				return []*domain.AuthEvent{
					domain.NewAuthEvent(domain.SessionHydrationFailure).WithError(domain.ErrTokenExpired),
					domain.NewAuthEvent(domain.RedirectRequestedEvent).WithTarget(s.redirects.Login),
				}
			})
			return nil
		}
	}

	if user != nil {
		// Cached user: authenticate optimistically, no network call
		s.commit(op, func() []*domain.AuthEvent {
			s.token = token
			s.user = user
			s.state = domain.StateAuthenticated
			s.verified = false
			s.loading = false
			return []*domain.AuthEvent{
				domain.NewAuthEvent(domain.SessionRestoredEvent).WithUser(user),
			}
		})
		return nil
	}

	// Token without a cached user: resolve it against the backend
	s.commit(op, func() []*domain.AuthEvent {
		s.token = token
		s.user = nil
		s.state = domain.StateHydrating
		s.loading = true
		return nil
	})

	resolved, err := s.api.Me(ctx, token)
	if err != nil {
		s.commit(op, func() []*domain.AuthEvent {
			s.clearStoreLocked(ctx)
			s.resetLocked()
			return []*domain.AuthEvent{
				domain.NewAuthEvent(domain.SessionHydrationFailure).WithError(err),
				domain.NewAuthEvent(domain.RedirectRequestedEvent).WithTarget(s.redirects.Login),
			}
		})
		return nil
	}

	s.commit(op, func() []*domain.AuthEvent {
		if err := s.store.Save(ctx, token, resolved); err != nil {
			s.logger.Warn("failed to persist hydrated session", "error", err)
			s.clearStoreLocked(ctx)
		}
		s.user = resolved
		s.state = domain.StateAuthenticated
		s.verified = true
		s.loading = false
		return []*domain.AuthEvent{
			domain.NewAuthEvent(domain.SessionHydratedEvent).WithUser(resolved),
		}
	})
	return nil
}

// Login authenticates against the backend and persists the session. The
// error is returned to the caller and mirrored on the snapshot so forms can
// show it inline.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) error {
	if err := validateCredentials(creds); err != nil {
		// Client-side validation failures never touch auth state
		return err
	}

	op, _ := s.begin()

	sess, err := s.api.Login(ctx, creds)
	if err != nil {
		s.commit(op, func() []*domain.AuthEvent {
			s.errMsg = domain.ErrorMessage(err)
			s.loading = false
			return []*domain.AuthEvent{
				domain.NewAuthEvent(domain.UserLoginFailureEvent).WithError(err),
			}
		})
		return err
	}

	applied := s.commit(op, func() []*domain.AuthEvent {
		if err := s.store.Save(ctx, sess.Token, sess.User); err != nil {
			// In-memory login still succeeds; the session just won't
			// survive a restart
			s.logger.Warn("failed to persist session", "error", err)
			s.clearStoreLocked(ctx)
		}
		s.token = sess.Token
		s.user = sess.User
		s.state = domain.StateAuthenticated
		s.verified = true
		s.loading = false
		s.errMsg = ""

		target := s.redirects.SalesHome
		if sess.User != nil && sess.User.Role == domain.RoleAdmin {
			target = s.redirects.AdminHome
		}
		return []*domain.AuthEvent{
			domain.NewAuthEvent(domain.UserLoginEvent).WithUser(sess.User),
			domain.NewAuthEvent(domain.RedirectRequestedEvent).WithUser(sess.User).WithTarget(target),
		}
	})
	if !applied {
		return domain.ErrSuperseded
	}
	return nil
}

// Logout ends the session. The backend call is best-effort: local clearing
// is the user-visible contract, so a backend outage can never trap the user
// in a broken authenticated state. Idempotent when already logged out.
func (s *SessionService) Logout(ctx context.Context) error {
	op, token := s.begin()

	if token == "" {
		s.commit(op, func() []*domain.AuthEvent {
			s.loading = false
			return nil
		})
		return nil
	}

	if err := s.api.Logout(ctx, token); err != nil {
		s.logger.Warn("backend logout failed, clearing local session anyway", "error", err)
	}

	s.commit(op, func() []*domain.AuthEvent {
		user := s.user
		s.clearStoreLocked(ctx)
		s.resetLocked()
		return []*domain.AuthEvent{
			domain.NewAuthEvent(domain.UserLogoutEvent).WithUser(user),
			domain.NewAuthEvent(domain.RedirectRequestedEvent).WithTarget(s.redirects.Login),
		}
	})
	return nil
}

// UpdateProfile replaces the authenticated user's profile. This is the only
// path that may swap the user record after authentication.
func (s *SessionService) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) error {
	op, token := s.begin()
	if token == "" {
		s.commit(op, func() []*domain.AuthEvent {
			s.loading = false
			return nil
		})
		return domain.ErrNotAuthenticated
	}

	user, err := s.api.UpdateProfile(ctx, token, upd)
	if err != nil {
		s.commit(op, func() []*domain.AuthEvent {
			s.errMsg = domain.ErrorMessage(err)
			s.loading = false
			return nil
		})
		return err
	}

	applied := s.commit(op, func() []*domain.AuthEvent {
		if err := s.store.Save(ctx, s.token, user); err != nil {
			s.logger.Warn("failed to persist updated profile", "error", err)
		}
		s.user = user
		s.loading = false
		return []*domain.AuthEvent{
			domain.NewAuthEvent(domain.ProfileUpdatedEvent).WithUser(user),
		}
	})
	if !applied {
		return domain.ErrSuperseded
	}
	return nil
}

// UpdatePassword changes the password; the backend rotates the token, which
// is re-persisted alongside the unchanged user.
func (s *SessionService) UpdatePassword(ctx context.Context, upd domain.PasswordUpdate) error {
	if upd.NewPassword == "" {
		return domain.ErrPasswordRequired
	}
	if len(upd.NewPassword) < 6 {
		return domain.ErrPasswordTooShort
	}

	op, token := s.begin()
	if token == "" {
		s.commit(op, func() []*domain.AuthEvent {
			s.loading = false
			return nil
		})
		return domain.ErrNotAuthenticated
	}

	sess, err := s.api.UpdatePassword(ctx, token, upd)
	if err != nil {
		s.commit(op, func() []*domain.AuthEvent {
			s.errMsg = domain.ErrorMessage(err)
			s.loading = false
			return nil
		})
		return err
	}

	applied := s.commit(op, func() []*domain.AuthEvent {
		if sess.Token != "" {
			s.token = sess.Token
		}
		if err := s.store.Save(ctx, s.token, s.user); err != nil {
			s.logger.Warn("failed to persist rotated token", "error", err)
		}
		s.loading = false
		return []*domain.AuthEvent{
			domain.NewAuthEvent(domain.PasswordUpdatedEvent).WithUser(s.user),
		}
	})
	if !applied {
		return domain.ErrSuperseded
	}
	return nil
}

// resetLocked puts the machine back to its logged-out shape
func (s *SessionService) resetLocked() {
	s.token = ""
	s.user = nil
	s.state = domain.StateUnauthenticated
	s.verified = false
	s.loading = false
	s.errMsg = ""
}

// clearStoreLocked clears persistence, logging instead of failing: a broken
// store must never block a logout or hydration fallback.
func (s *SessionService) clearStoreLocked(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear session store", "error", err)
	}
}
