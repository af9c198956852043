package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// SessionUser is the identity snapshot returned at login and cached next to
// the token.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the cached credential pair. It survives restarts so a new
// process does not require a fresh login.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionStore persists the session as a JSON file.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load returns the cached session, or nil when none is stored.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// a corrupt cache behaves like no cache at all
		_ = s.Clear()
		return nil, nil
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

// Save writes the session with owner-only permissions.
func (s *SessionStore) Save(session *Session) error {
	data, err := json.Marshal(session)
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

// Clear discards the cached session. Missing file is not an error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
