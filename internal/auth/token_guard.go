// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"net/http"
)

// TokenGuard is the stateless Guard: the claim travels in a signed JWT.
type TokenGuard struct {
	jwt     *JWTManager
	checker *CredentialChecker
	cookies CookieOptions
}

// NewTokenGuard creates a token-mode guard.
func NewTokenGuard(jwtManager *JWTManager, checker *CredentialChecker, cookies CookieOptions) *TokenGuard {
	cookies.MaxAge = jwtManager.timeout
	return &TokenGuard{jwt: jwtManager, checker: checker, cookies: cookies}
}

// Mode returns ModeToken.
func (g *TokenGuard) Mode() Mode { return ModeToken }

// Authenticate verifies the auth-token cookie.
func (g *TokenGuard) Authenticate(r *http.Request) (*Claim, error) {
	raw := cookieValue(r, TokenCookieName)
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := g.jwt.ValidateToken(raw)
	if err != nil || !claims.Authenticated {
		return nil, ErrUnauthenticated
	}
	return claims.Claim(), nil
}

// Login checks credentials and sets a freshly signed token.
func (g *TokenGuard) Login(w http.ResponseWriter, r *http.Request, username, password string) (*Claim, error) {
	if err := g.checker.Check(username, password); err != nil {
		return nil, err
	}

	token, claims, err := g.jwt.GenerateToken(username)
	if err != nil {
		return nil, err
	}
	g.cookies.set(w, r, TokenCookieName, token)
	return claims.Claim(), nil
}

// Logout clears the cookie. There is no server-side state to revoke.
func (g *TokenGuard) Logout(w http.ResponseWriter, r *http.Request) error {
	g.cookies.clear(w, r, TokenCookieName)
	return nil
}
