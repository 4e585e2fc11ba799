// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Session-related errors
var (
	// ErrSessionNotFound is returned when a session is not found in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when trying to access an expired session.
	ErrSessionExpired = errors.New("session expired")
)

// metadataAuthenticated is the Metadata key that marks a logged-in session.
const metadataAuthenticated = "authenticated"

// Session is a server-side login record.
type Session struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAuthenticated reports whether the session was created by a successful login.
func (s *Session) IsAuthenticated() bool {
	return s.Metadata[metadataAuthenticated] == "true"
}

// Claim converts the session to the carrier-independent claim.
func (s *Session) Claim() *Claim {
	return &Claim{
		User:          s.Username,
		Authenticated: s.IsAuthenticated(),
		IssuedAt:      s.CreatedAt,
		ExpiresAt:     s.ExpiresAt,
	}
}

// NewSession creates an authenticated session for username.
func NewSession(username string, duration time.Duration) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
		Metadata:  map[string]string{metadataAuthenticated: "true"},
	}, nil
}

// generateSessionID returns 32 random bytes, hex encoded.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SessionStore defines the interface for session storage backends.
type SessionStore interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID.
	// Returns ErrSessionNotFound if not found.
	// Returns ErrSessionExpired if the session exists but is expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session by ID.
	// Does not return error if session doesn't exist.
	Delete(ctx context.Context, id string) error

	// CleanupExpired removes all expired sessions and returns how many.
	CleanupExpired(ctx context.Context) (int, error)

	// Count returns the number of stored sessions, expired or not.
	Count(ctx context.Context) (int, error)
}

// MemorySessionStore is an in-memory SessionStore. Sessions do not survive
// a restart; use the BadgerDB store for that.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a copy of session.
func (s *MemorySessionStore) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(session)
	return nil
}

// Get retrieves a session by ID.
func (s *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return copySession(session), nil
}

// Delete removes a session by ID.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// CleanupExpired removes all expired sessions.
func (s *MemorySessionStore) CleanupExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, id)
			count++
		}
	}
	return count, nil
}

// Count returns the number of stored sessions.
func (s *MemorySessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

func copySession(session *Session) *Session {
	copied := *session
	if session.Metadata != nil {
		copied.Metadata = make(map[string]string, len(session.Metadata))
		for k, v := range session.Metadata {
			copied.Metadata[k] = v
		}
	}
	return &copied
}
