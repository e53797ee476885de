package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/you/expensefront/domain"
)

// FileSessionStore implements domain.SessionStore on a single JSON state
// file, the local-machine equivalent of the browser's persistent storage.
// Token and user live in one file so a save is all-or-nothing.
type FileSessionStore struct {
	path string

	mu sync.Mutex
}

// NewFileSessionStore creates a file-backed session store
func NewFileSessionStore(path string) (*FileSessionStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session state file path is required")
	}
	return &FileSessionStore{path: path}, nil
}

// Save implements domain.SessionStore
func (s *FileSessionStore) Save(_ context.Context, token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(domain.Session{Token: token, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir session state dir: %w", err)
	}

	// Write-then-rename keeps a crashed save from leaving a torn file behind
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session state file: %w", err)
	}
	return nil
}

// Load implements domain.SessionStore. Anything unreadable is reported as
// nothing stored, never as an error.
func (s *FileSessionStore) Load(_ context.Context) (string, *domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", nil, nil
	}
	if len(b) == 0 {
		return "", nil, nil
	}

	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return "", nil, nil
	}
	return sanitize(sess)
}

// Clear implements domain.SessionStore
func (s *FileSessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session state file: %w", err)
	}
	return nil
}

// sanitize enforces the stored-session invariants: a user without a token is
// meaningless, and a user with an unknown role is treated as corrupt data.
func sanitize(sess domain.Session) (string, *domain.User, error) {
	if sess.Token == "" {
		return "", nil, nil
	}
	if sess.User != nil && !sess.User.Role.Valid() {
		return sess.Token, nil, nil
	}
	return sess.Token, sess.User, nil
}

var _ domain.SessionStore = (*FileSessionStore)(nil)
