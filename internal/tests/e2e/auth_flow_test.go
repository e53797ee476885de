package e2e

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/expensefront/domain"
	"github.com/you/expensefront/internal/infrastructure/api"
	"github.com/you/expensefront/internal/infrastructure/auth"
	"github.com/you/expensefront/internal/infrastructure/storage"
	"github.com/you/expensefront/internal/routing"
	"github.com/you/expensefront/internal/services"
)

// env wires real components against the fake backend: file-backed session
// store, HTTP auth client, JWT inspector, session service and router.
type env struct {
	backend  *TestServer
	store    *storage.FileSessionStore
	sessions *services.SessionService
	router   *routing.Router

	mu     sync.Mutex
	events []*domain.AuthEvent
}

func newEnv(t *testing.T) *env {
	t.Helper()

	backend := NewTestServer(t)
	backend.Seed(BackendUser{
		ID: "u-rep", Name: "Riley Rep", Email: "rep@example.com",
		Password: "secret123", Role: domain.RoleSalesRep,
	})
	backend.Seed(BackendUser{
		ID: "u-admin", Name: "Ada Admin", Email: "admin@example.com",
		Password: "hunter22", Role: domain.RoleAdmin,
	})

	store, err := storage.NewFileSessionStore(t.TempDir() + "/session.json")
	require.NoError(t, err)

	client := api.NewClient(backend.BaseURL(), 5*time.Second)
	sessions := services.NewSessionService(
		store,
		api.NewAuthClient(client),
		auth.NewJWTInspector(),
		nil,
		services.Redirects{},
	)

	policy, err := routing.NewRoutePolicy()
	require.NoError(t, err)

	e := &env{
		backend:  backend,
		store:    store,
		sessions: sessions,
		router:   routing.NewRouter(policy, nil),
	}
	sessions.Subscribe(func(event *domain.AuthEvent) {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.events = append(e.events, event)
	})
	return e
}

func (e *env) redirectTargets() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var targets []string
	for _, event := range e.events {
		if event.EventType == domain.RedirectRequestedEvent {
			targets = append(targets, event.Target)
		}
	}
	return targets
}

func TestLoginLogoutFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.sessions.Bootstrap(ctx))
	snap := e.sessions.Snapshot()
	assert.False(t, snap.IsAuthenticated())

	// Protected paths resolve to the login view before authentication
	decision := e.router.Resolve(routing.PathDashboard, snap)
	assert.Equal(t, routing.Redirect(routing.PathLogin), decision)

	require.NoError(t, e.sessions.Login(ctx, domain.Credentials{
		Email: "rep@example.com", Password: "secret123",
	}))

	snap = e.sessions.Snapshot()
	require.True(t, snap.IsAuthenticated())
	assert.True(t, snap.Verified)
	assert.Equal(t, domain.RoleSalesRep, snap.User.Role)
	assert.Contains(t, e.redirectTargets(), routing.PathDashboard)

	// Session landed on disk
	token, user, err := e.store.Load(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, "rep@example.com", user.Email)

	// Sales rep routing: own subtree renders, admin subtree bounces
	assert.Equal(t, routing.Render("dashboard"), e.router.Resolve(routing.PathDashboard, snap))
	assert.Equal(t, routing.Redirect(routing.PathDashboard), e.router.Resolve(routing.PathAdminDashboard, snap))

	require.NoError(t, e.sessions.Logout(ctx))
	snap = e.sessions.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Contains(t, e.redirectTargets(), routing.PathLogin)

	token, _, err = e.store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestAdminLoginLandsOnAdminDashboard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.sessions.Login(ctx, domain.Credentials{
		Email: "admin@example.com", Password: "hunter22",
	}))

	snap := e.sessions.Snapshot()
	require.True(t, snap.HasRole(domain.RoleAdmin))
	assert.Contains(t, e.redirectTargets(), routing.PathAdminDashboard)

	assert.Equal(t, routing.Redirect(routing.PathAdminDashboard), e.router.Resolve(routing.PathRoot, snap))
	assert.Equal(t, routing.Render("admin-reports"), e.router.Resolve(routing.PathAdminReports, snap))
	assert.Equal(t, routing.Redirect(routing.PathAdminDashboard), e.router.Resolve(routing.PathExpenses, snap))
}

func TestRestartRestoresSessionOptimistically(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.sessions.Login(ctx, domain.Credentials{
		Email: "rep@example.com", Password: "secret123",
	}))

	// A fresh service over the same store stands in for a process restart
	restarted := services.NewSessionService(
		e.store,
		api.NewAuthClient(api.NewClient(e.backend.BaseURL(), 5*time.Second)),
		auth.NewJWTInspector(),
		nil,
		services.Redirects{},
	)
	require.NoError(t, restarted.Bootstrap(ctx))

	snap := restarted.Snapshot()
	require.True(t, snap.IsAuthenticated())
	assert.False(t, snap.Verified, "cached user must restore without re-verification")
	assert.Equal(t, "rep@example.com", snap.User.Email)
}

func TestBootstrapHydratesTokenOnlySession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	token := e.backend.MintToken(t, "rep@example.com", time.Hour)
	require.NoError(t, e.store.Save(ctx, token, nil))

	require.NoError(t, e.sessions.Bootstrap(ctx))

	snap := e.sessions.Snapshot()
	require.True(t, snap.IsAuthenticated())
	assert.True(t, snap.Verified)
	assert.Equal(t, "Riley Rep", snap.User.Name)

	// The hydrated user is cached for the next start
	_, user, err := e.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u-rep", user.ID)
}

func TestBootstrapRejectedTokenClearsSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.store.Save(ctx, "not-a-real-token", nil))
	require.NoError(t, e.sessions.Bootstrap(ctx))

	snap := e.sessions.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Contains(t, e.redirectTargets(), routing.PathLogin)

	token, _, err := e.store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBootstrapExpiredTokenDiscardedLocally(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	expired := e.backend.MintToken(t, "rep@example.com", -time.Hour)
	require.NoError(t, e.store.Save(ctx, expired, &domain.User{
		ID: "u-rep", Email: "rep@example.com", Role: domain.RoleSalesRep,
	}))

	require.NoError(t, e.sessions.Bootstrap(ctx))

	snap := e.sessions.Snapshot()
	assert.False(t, snap.IsAuthenticated())

	token, _, err := e.store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoginFailureLeavesNoTrace(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	err := e.sessions.Login(ctx, domain.Credentials{
		Email: "rep@example.com", Password: "wrong",
	})
	require.Error(t, err)

	snap := e.sessions.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Equal(t, "Invalid credentials", snap.Err)

	token, _, loadErr := e.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, token)
}

func TestPasswordLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.sessions.Login(ctx, domain.Credentials{
		Email: "rep@example.com", Password: "secret123",
	}))
	oldToken := e.sessions.Snapshot().Token

	require.NoError(t, e.sessions.UpdatePassword(ctx, domain.PasswordUpdate{
		CurrentPassword: "secret123",
		NewPassword:     "rotated456",
	}))

	snap := e.sessions.Snapshot()
	assert.NotEqual(t, oldToken, snap.Token, "password change must rotate the token")
	require.True(t, snap.IsAuthenticated())

	// The old password is gone; the new one works
	require.NoError(t, e.sessions.Logout(ctx))
	err := e.sessions.Login(ctx, domain.Credentials{Email: "rep@example.com", Password: "secret123"})
	require.Error(t, err)
	require.NoError(t, e.sessions.Login(ctx, domain.Credentials{Email: "rep@example.com", Password: "rotated456"}))
}

func TestForgotAndResetPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	authAPI := api.NewAuthClient(api.NewClient(e.backend.BaseURL(), 5*time.Second))

	require.NoError(t, authAPI.ForgotPassword(ctx, "rep@example.com"))
	resetToken := e.backend.ResetTokenFor("rep@example.com")
	require.NotEmpty(t, resetToken)

	sess, err := authAPI.ResetPassword(ctx, resetToken, "brandnew789")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	require.NoError(t, e.sessions.Login(ctx, domain.Credentials{
		Email: "rep@example.com", Password: "brandnew789",
	}))
}

func TestRegisterIssuesWorkingSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	authAPI := api.NewAuthClient(api.NewClient(e.backend.BaseURL(), 5*time.Second))

	sess, err := authAPI.Register(ctx, domain.Registration{
		Name: "New Rep", Email: "new@example.com", Password: "pass1234",
	})
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.Equal(t, domain.RoleSalesRep, sess.User.Role)

	// The issued token is immediately usable
	user, err := authAPI.Me(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestProfileUpdateFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.sessions.Login(ctx, domain.Credentials{
		Email: "rep@example.com", Password: "secret123",
	}))

	require.NoError(t, e.sessions.UpdateProfile(ctx, domain.ProfileUpdate{
		Name: "Riley Renamed", Email: "rep@example.com",
	}))

	snap := e.sessions.Snapshot()
	assert.Equal(t, "Riley Renamed", snap.User.Name)

	_, user, err := e.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Riley Renamed", user.Name)
}
