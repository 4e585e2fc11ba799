// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"fmt"
	"io"
	"net/http"

	"github.com/tomtom215/footfall/internal/config"
)

// Guard verifies and issues the admin carrier. Implementations must be safe
// for concurrent use.
type Guard interface {
	// Authenticate returns the claim for r or ErrUnauthenticated. It does
	// not modify any state, so calling it twice gives the same answer.
	Authenticate(r *http.Request) (*Claim, error)

	// Login checks the credentials and, on success, writes the carrier to w.
	// On failure nothing is written.
	Login(w http.ResponseWriter, r *http.Request, username, password string) (*Claim, error)

	// Logout invalidates the carrier on r and clears it from the client.
	Logout(w http.ResponseWriter, r *http.Request) error

	// Mode reports which carrier the guard uses.
	Mode() Mode
}

// NewGuard builds the Guard selected by cfg.AuthMode. The returned closer
// releases the session store, if one was opened, and is never nil.
func NewGuard(cfg *config.SecurityConfig, checker *CredentialChecker) (Guard, io.Closer, error) {
	cookies := CookieOptions{
		Secure: cfg.CookieSecure,
		MaxAge: cfg.SessionTimeout,
	}

	switch cfg.AuthMode {
	case config.AuthModeToken:
		jwtManager, err := NewJWTManager(cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewTokenGuard(jwtManager, checker, cookies), nopCloser{}, nil

	case config.AuthModeSession, "":
		factory, err := NewSessionStoreFactory(SessionStoreType(cfg.SessionStore), cfg.SessionStorePath)
		if err != nil {
			return nil, nil, err
		}
		return NewSessionGuard(factory.CreateStore(), checker, cookies), factory, nil

	default:
		return nil, nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
