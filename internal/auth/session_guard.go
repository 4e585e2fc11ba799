// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/footfall/internal/logging"
)

// SessionGuard is the stateful Guard: the cookie holds an opaque ID and the
// claim lives in a SessionStore.
type SessionGuard struct {
	store   SessionStore
	checker *CredentialChecker
	cookies CookieOptions
}

// NewSessionGuard creates a session-mode guard.
func NewSessionGuard(store SessionStore, checker *CredentialChecker, cookies CookieOptions) *SessionGuard {
	if cookies.MaxAge <= 0 {
		cookies.MaxAge = DefaultLifetime
	}
	return &SessionGuard{store: store, checker: checker, cookies: cookies}
}

// Mode returns ModeSession.
func (g *SessionGuard) Mode() Mode { return ModeSession }

// Store returns the backing session store.
func (g *SessionGuard) Store() SessionStore { return g.store }

// Authenticate passes iff the cookie names a live session marked authenticated.
func (g *SessionGuard) Authenticate(r *http.Request) (*Claim, error) {
	id := cookieValue(r, SessionCookieName)
	if id == "" {
		return nil, ErrUnauthenticated
	}

	session, err := g.store.Get(r.Context(), id)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if !session.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	return session.Claim(), nil
}

// Login checks credentials, discards any session the request already
// carried, and issues a fresh session ID.
func (g *SessionGuard) Login(w http.ResponseWriter, r *http.Request, username, password string) (*Claim, error) {
	if err := g.checker.Check(username, password); err != nil {
		return nil, err
	}

	if old := cookieValue(r, SessionCookieName); old != "" {
		if err := g.store.Delete(r.Context(), old); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to discard previous session on login")
		}
	}

	session, err := NewSession(username, g.cookies.MaxAge)
	if err != nil {
		return nil, err
	}
	if err := g.store.Create(r.Context(), session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	g.cookies.set(w, r, SessionCookieName, session.ID)
	return session.Claim(), nil
}

// Logout deletes the session and clears the cookie. A store failure is
// returned and the cookie is left in place so the client can retry.
func (g *SessionGuard) Logout(w http.ResponseWriter, r *http.Request) error {
	if id := cookieValue(r, SessionCookieName); id != "" {
		if err := g.store.Delete(r.Context(), id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	g.cookies.clear(w, r, SessionCookieName)
	return nil
}
