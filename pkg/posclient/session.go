package posclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pahanaedu/pos-platform/internal/models"
)

// Session is the cashier's persisted login state. Terminals are shared
// machines, so the session lives in a file the launcher can wipe, not in
// process memory alone.
type Session struct {
	Token    string           `json:"token"`
	Username string           `json:"username"`
	Role     models.StaffRole `json:"role"`
	SavedAt  time.Time        `json:"saved_at"`
}

type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load returns (nil, nil) when no session has been saved yet.
func (s *SessionStore) Load() (*Session, error) {

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}

	return session, nil
}

func (s *SessionStore) Save(session *Session) error {

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	session.SavedAt = time.Now()

	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	// The token is a credential; keep the file owner-only.
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}

func (s *SessionStore) Clear() error {

	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
