package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/you/expensefront/domain"
)

// AuthClient implements domain.AuthAPI against the backend auth endpoints
type AuthClient struct {
	client *Client
}

// NewAuthClient creates the auth endpoint client
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// sessionResponse is the wire shape of every endpoint that issues a token
type sessionResponse struct {
	Token string    `json:"token"`
	User  *wireUser `json:"user,omitempty"`
}

type wireUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (w *wireUser) toDomain() (*domain.User, error) {
	if w == nil {
		return nil, nil
	}
	role, err := domain.ParseRole(w.Role)
	if err != nil {
		return nil, fmt.Errorf("backend returned %w", err)
	}
	return &domain.User{ID: w.ID, Name: w.Name, Email: w.Email, Role: role}, nil
}

func (r *sessionResponse) toSession() (*domain.Session, error) {
	user, err := r.User.toDomain()
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: r.Token, User: user}, nil
}

// toUserSession is for the endpoints that establish a session: those must
// issue an identity along with the token. A 2xx body missing either is
// malformed and never reaches the session state. Rotation endpoints
// (resetpassword, updatepassword) stay on toSession since the backend may
// omit the user there.
func (r *sessionResponse) toUserSession() (*domain.Session, error) {
	if r.Token == "" || r.User == nil {
		return nil, &domain.APIError{Message: "Malformed response from the server"}
	}
	return r.toSession()
}

// Register implements domain.AuthAPI
func (a *AuthClient) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	var resp sessionResponse
	if err := a.client.do(ctx, http.MethodPost, "/auth/register", "", reg, &resp); err != nil {
		return nil, err
	}
	return resp.toUserSession()
}

// Login implements domain.AuthAPI
func (a *AuthClient) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var resp sessionResponse
	if err := a.client.do(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return nil, err
	}
	return resp.toUserSession()
}

// Logout implements domain.AuthAPI. Best-effort by contract: the session
// service ignores this call's failure.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	return a.client.do(ctx, http.MethodGet, "/auth/logout", token, nil, nil)
}

// Me implements domain.AuthAPI
func (a *AuthClient) Me(ctx context.Context, token string) (*domain.User, error) {
	var resp wireUser
	if err := a.client.do(ctx, http.MethodGet, "/auth/me", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}

// ForgotPassword implements domain.AuthAPI
func (a *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return a.client.do(ctx, http.MethodPost, "/auth/forgotpassword", "", body, nil)
}

// ResetPassword implements domain.AuthAPI
func (a *AuthClient) ResetPassword(ctx context.Context, resetToken, newPassword string) (*domain.Session, error) {
	body := map[string]string{"password": newPassword}
	var resp sessionResponse
	if err := a.client.do(ctx, http.MethodPut, "/auth/resetpassword/"+resetToken, "", body, &resp); err != nil {
		return nil, err
	}
	return resp.toSession()
}

// UpdatePassword implements domain.AuthAPI. The backend rotates the token.
func (a *AuthClient) UpdatePassword(ctx context.Context, token string, upd domain.PasswordUpdate) (*domain.Session, error) {
	var resp sessionResponse
	if err := a.client.do(ctx, http.MethodPut, "/auth/updatepassword", token, upd, &resp); err != nil {
		return nil, err
	}
	return resp.toSession()
}

// UpdateProfile implements domain.AuthAPI
func (a *AuthClient) UpdateProfile(ctx context.Context, token string, upd domain.ProfileUpdate) (*domain.User, error) {
	var resp wireUser
	if err := a.client.do(ctx, http.MethodPut, "/auth/updateprofile", token, upd, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}

var _ domain.AuthAPI = (*AuthClient)(nil)
