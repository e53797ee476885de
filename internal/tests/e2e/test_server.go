package e2e

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/you/expensefront/domain"
)

const testJWTSecret = "e2e-test-secret"

// BackendUser is a seeded account on the fake backend
type BackendUser struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// TestServer is an in-process stand-in for the expense tracker backend. It
// speaks the same wire protocol as the real API: JSON bodies, bearer auth,
// HS256 tokens, error payloads with an "error" field.
type TestServer struct {
	Server *httptest.Server

	mu          sync.Mutex
	users       map[string]*BackendUser // keyed by email
	revoked     map[string]bool
	resetTokens map[string]string // reset token -> email
}

// NewTestServer starts the fake backend and registers cleanup
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &TestServer{
		users:       make(map[string]*BackendUser),
		revoked:     make(map[string]bool),
		resetTokens: make(map[string]string),
	}

	router := gin.New()
	api := router.Group("/api/v1/auth")
	api.POST("/login", ts.handleLogin)
	api.POST("/register", ts.handleRegister)
	api.GET("/logout", ts.handleLogout)
	api.GET("/me", ts.handleMe)
	api.POST("/forgotpassword", ts.handleForgotPassword)
	api.PUT("/resetpassword/:token", ts.handleResetPassword)
	api.PUT("/updatepassword", ts.handleUpdatePassword)
	api.PUT("/updateprofile", ts.handleUpdateProfile)

	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Server.Close)
	return ts
}

// BaseURL returns the API root the client should be pointed at
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL + "/api/v1"
}

// Seed registers an account on the fake backend
func (ts *TestServer) Seed(user BackendUser) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	u := user
	ts.users[u.Email] = &u
}

// MintToken issues a token for a seeded user, for tests that pre-populate
// the session store directly.
func (ts *TestServer) MintToken(t *testing.T, email string, ttl time.Duration) string {
	t.Helper()
	ts.mu.Lock()
	user, ok := ts.users[email]
	ts.mu.Unlock()
	if !ok {
		t.Fatalf("no seeded user %s", email)
	}
	return ts.mint(user, ttl)
}

// ResetTokenFor returns the last reset token issued for the email
func (ts *TestServer) ResetTokenFor(email string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for token, e := range ts.resetTokens {
		if e == email {
			return token
		}
	}
	return ""
}

func (ts *TestServer) mint(user *BackendUser, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
		"jti":     uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return token
}

func wire(user *BackendUser) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
	}
}

// authenticate resolves the bearer token to a seeded user
func (ts *TestServer) authenticate(c *gin.Context) (*BackendUser, string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized to access this route"})
		return nil, "", false
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	ts.mu.Lock()
	revoked := ts.revoked[raw]
	ts.mu.Unlock()
	if revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized to access this route"})
		return nil, "", false
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized to access this route"})
		return nil, "", false
	}

	claims := token.Claims.(jwt.MapClaims)
	userID, _ := claims["user_id"].(string)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, user := range ts.users {
		if user.ID == userID {
			return user, raw, true
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized to access this route"})
	return nil, "", false
}

func (ts *TestServer) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an email and password"})
		return
	}

	ts.mu.Lock()
	user, ok := ts.users[req.Email]
	ts.mu.Unlock()
	if !ok || user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": ts.mint(user, time.Hour), "user": wire(user)})
}

func (ts *TestServer) handleRegister(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload"})
		return
	}

	ts.mu.Lock()
	if _, exists := ts.users[req.Email]; exists {
		ts.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}
	role := domain.RoleSalesRep
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	user := &BackendUser{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	ts.users[req.Email] = user
	ts.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"token": ts.mint(user, time.Hour), "user": wire(user)})
}

func (ts *TestServer) handleLogout(c *gin.Context) {
	_, raw, ok := ts.authenticate(c)
	if !ok {
		return
	}
	ts.mu.Lock()
	ts.revoked[raw] = true
	ts.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ts *TestServer) handleMe(c *gin.Context) {
	user, _, ok := ts.authenticate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wire(user))
}

func (ts *TestServer) handleForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an email"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if _, ok := ts.users[req.Email]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no user with that email"})
		return
	}
	ts.resetTokens[uuid.NewString()] = req.Email
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ts *TestServer) handleResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a password"})
		return
	}

	ts.mu.Lock()
	email, ok := ts.resetTokens[c.Param("token")]
	if !ok {
		ts.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset token"})
		return
	}
	delete(ts.resetTokens, c.Param("token"))
	user := ts.users[email]
	user.Password = req.Password
	ts.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"token": ts.mint(user, time.Hour), "user": wire(user)})
}

func (ts *TestServer) handleUpdatePassword(c *gin.Context) {
	user, raw, ok := ts.authenticate(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	ts.mu.Lock()
	if user.Password != req.CurrentPassword {
		ts.mu.Unlock()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Password is incorrect"})
		return
	}
	user.Password = req.NewPassword
	ts.revoked[raw] = true
	ts.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"token": ts.mint(user, time.Hour), "user": wire(user)})
}

func (ts *TestServer) handleUpdateProfile(c *gin.Context) {
	user, _, ok := ts.authenticate(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	ts.mu.Lock()
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		delete(ts.users, user.Email)
		user.Email = req.Email
		ts.users[user.Email] = user
	}
	ts.mu.Unlock()

	c.JSON(http.StatusOK, wire(user))
}
