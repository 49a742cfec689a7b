// Package session owns the authenticated session for the client apps. The
// bearer token is persisted to a mode-0600 file under the config directory,
// the terminal equivalent of the platform secure store, and is destroyed on
// logout together with any session-scoped caches held by the callers.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tokenFile = "token"

// Store loads and persists the bearer token. It implements the API client's
// TokenSource. The zero token means "no session"; protected screens route to
// login when Authenticated reports false.
type Store struct {
	dir string

	mu     sync.Mutex
	token  string
	loaded bool
}

// NewStore creates a token store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, tokenFile)
}

// load reads the token file once. Callers hold s.mu.
func (s *Store) load() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path())
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.token = ""
	case err != nil:
		return err
	default:
		s.token = strings.TrimSpace(string(data))
	}
	s.loaded = true
	return nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return "", err
	}
	return s.token, nil
}

// Authenticated reports whether a session token is present.
func (s *Store) Authenticated() bool {
	tok, err := s.Token()
	return err == nil && tok != ""
}

// Save persists the token with owner-only permissions.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path(), []byte(token), 0o600); err != nil {
		return err
	}
	s.token = token
	s.loaded = true
	return nil
}

// Clear removes the persisted token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.token = ""
	s.loaded = true
	return nil
}
