// Package session holds the authenticated identity and credential for the
// current user and persists them across runs. The store is shared by
// pointer: the request gateway clears it on an authentication rejection and
// every holder observes the cleared state immediately.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/existflow/taskflow/internal/logger"
	"github.com/existflow/taskflow/internal/model"
)

// Persisted entry names. The credential and identity are stored as two
// independent string entries but are only ever valid as a pair.
const (
	tokenKey    = "taskflow_token"
	identityKey = "taskflow_user"
)

// Store keeps the current session in memory and mirrors it to disk
type Store struct {
	mu       sync.Mutex
	path     string
	token    string
	identity *model.Identity
}

// NewStore creates a store backed by ~/.taskflow/session.json
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(home, ".taskflow", "session.json")), nil
}

// NewStoreAt creates a store backed by the given file
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Restore loads the persisted credential and identity. A session is
// established only when both entries are present and well-formed;
// anything else leaves the store empty. Restore never fails.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("Ignoring malformed session file", logger.F("path", s.path))
		return
	}

	token := entries[tokenKey]
	rawIdentity := entries[identityKey]
	if token == "" || rawIdentity == "" {
		return
	}

	var id model.Identity
	if err := json.Unmarshal([]byte(rawIdentity), &id); err != nil || id.Email == "" {
		logger.Warn("Ignoring malformed session identity")
		return
	}

	s.token = token
	s.identity = &id
	logger.Debug("Session restored", logger.F("email", id.Email))
}

// Establish records a freshly authenticated session and persists it. The
// in-memory session reflects the call even when persistence fails; the
// write error is returned for the caller to surface.
func (s *Store) Establish(token string, identity model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	id := identity
	s.identity = &id

	rawIdentity, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	entries := map[string]string{
		tokenKey:    token,
		identityKey: string(rawIdentity),
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	logger.Info("Session established", logger.F("email", identity.Email))
	return nil
}

// Clear empties the in-memory session and removes the persisted pair.
// Clearing an already-empty session is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" && s.identity == nil {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	s.token = ""
	s.identity = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	logger.Info("Session cleared")
	return nil
}

// IsAuthenticated reports whether both credential and identity are present
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.identity != nil
}

// Token returns the current credential, or empty when logged out
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity returns a copy of the current identity, or nil when logged out
func (s *Store) Identity() *model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}
