// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session keeps the console client's login between runs.
//
// A [Holder] owns one JSON file containing the bearer token and the user it
// was issued to. The file is written with 0600 permissions because the token
// grants full access to the account.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/imperial-command/models"
)

// ErrNoSession is returned by Load when nothing has been saved yet.
var ErrNoSession = errors.New("no saved session")

// ErrInvalidSession is returned for a session file that cannot be used.
var ErrInvalidSession = errors.New("invalid session file")

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// Session is the persisted login state.
type Session struct {
	Token   string              `json:"token"`
	User    models.UserResponse `json:"user"`
	SavedAt time.Time           `json:"savedAt"`
}

// Holder reads and writes the session file and caches the active session
// in memory. It is safe for concurrent use.
type Holder struct {
	path string

	mu      sync.RWMutex
	current *Session
}

// NewHolder returns a Holder backed by the file at path.
func NewHolder(path string) *Holder {
	return &Holder{path: path}
}

// Path returns the location of the session file.
func (h *Holder) Path() string {
	return h.path
}

// Load reads the session file and makes it the active session.
func (h *Holder) Load() (Session, error) {
	data, err := os.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err = json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if strings.TrimSpace(s.Token) == "" {
		return Session{}, fmt.Errorf("%w: empty token", ErrInvalidSession)
	}

	h.mu.Lock()
	h.current = &s
	h.mu.Unlock()
	return s, nil
}

// Save persists s and makes it the active session. The file is replaced
// atomically so a crash never leaves a half-written token behind.
func (h *Holder) Save(s Session) error {
	if strings.TrimSpace(s.Token) == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidSession)
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(h.path)
	if err = os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err = tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err = os.Rename(tmpName, h.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	h.mu.Lock()
	h.current = &s
	h.mu.Unlock()
	return nil
}

// Clear forgets the active session and removes the file. A missing file is
// not an error.
func (h *Holder) Clear() error {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()

	if err := os.Remove(h.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Current returns the active session, if any.
func (h *Holder) Current() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Session{}, false
	}
	return *h.current, true
}

// UpdateUser replaces the cached user of the active session and persists it.
// It is a no-op without an active session.
func (h *Holder) UpdateUser(user models.UserResponse) error {
	s, ok := h.Current()
	if !ok {
		return nil
	}
	s.User = user
	s.SavedAt = time.Time{}
	return h.Save(s)
}
