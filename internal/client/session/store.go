// Package session holds the authenticated identity (bearer token and
// admin flag) and persists it across process restarts.
package session

import (
	"encoding/json"
	"os"
	"sync"
)

// Store is the session-storage abstraction the client core depends on.
// Clear is an extension beyond the observed mobile-app behavior, added
// so a logout path exists.
type Store interface {
	// Save records the session. It is called once, right after a
	// successful authentication.
	Save(token string, isAdmin bool) error
	// Token returns the current bearer token and whether one is set.
	Token() (string, bool)
	// IsAdmin reports whether the current session has admin rights.
	IsAdmin() bool
	// Clear forgets the session.
	Clear() error
}

// fileSession is the on-disk shape.
type fileSession struct {
	AuthToken string `json:"authToken"`
	IsAdmin   bool   `json:"isAdmin"`
}

// FileStore persists the session as a small JSON file.
type FileStore struct {
	path string

	mu      sync.Mutex
	loaded  bool
	session fileSession
	present bool
}

// NewFileStore creates a store backed by the given file path. The file
// is read lazily on first access; a missing file simply means no session.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads the file once. Callers must hold mu.
func (s *FileStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var sess fileSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return
	}
	s.session = sess
	s.present = sess.AuthToken != ""
}

func (s *FileStore) Save(token string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.session = fileSession{AuthToken: token, IsAdmin: isAdmin}
	s.present = true

	data, err := json.Marshal(s.session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if !s.present {
		return "", false
	}
	return s.session.AuthToken, true
}

func (s *FileStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.present && s.session.IsAdmin
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.session = fileSession{}
	s.present = false

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemStore is an in-memory Store for tests and throwaway sessions.
type MemStore struct {
	mu      sync.Mutex
	token   string
	isAdmin bool
	present bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(token string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.isAdmin = isAdmin
	s.present = true
	return nil
}

func (s *MemStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return "", false
	}
	return s.token, true
}

func (s *MemStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.present && s.isAdmin
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.isAdmin = false
	s.present = false
	return nil
}
