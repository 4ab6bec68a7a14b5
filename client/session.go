package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Session holds the logged-in credentials between calls. With a non-empty
// path it persists them as JSON on disk so CLI invocations share a login;
// with an empty path it is purely in-memory.
type Session struct {
	mu    sync.Mutex
	path  string
	Token string `json:"token"`
	Email string `json:"email"`
}

func NewSession(path string) (*Session, error) {
	s := &Session{path: path}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Get() (token, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token, s.Email
}

func (s *Session) Set(token, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = token
	s.Email = email
	return s.flush()
}

func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = ""
	s.Email = ""
	if s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Session) flush() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
