package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"taskflow/internal/models"
)

// Session holds the current token and user, the only mutable client state.
// It is explicit and injectable rather than a hidden singleton: callers
// construct one, hand it to a Client, and decide where it persists.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *models.PublicUser
}

type sessionFile struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user,omitempty"`
}

// NewSession creates a session persisted at path. An empty path keeps the
// session in memory only.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Load restores a previously saved session. A missing file is not an error;
// it just leaves the session unauthenticated.
func (s *Session) Load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = f.Token
	s.user = f.User
	s.mu.Unlock()
	return nil
}

// Save writes the current token/user to disk, readable only by the owner.
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	f := sessionFile{Token: s.token, User: s.user}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear forgets the token and user and removes the persisted file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Session) set(token string, user *models.PublicUser) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *models.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
