// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package auth authenticates the single configured administrator.
//
// # Modes
//
// Two carriers implement the same Guard contract:
//
//   - session: an opaque 32-byte ID in the sessionId cookie, looked up in a
//     SessionStore (memory or BadgerDB). Logout deletes the server-side
//     entry.
//   - token: an HS256 JWT in the auth-token cookie carrying
//     {user, authenticated, iat, nbf, exp}. Nothing is stored server-side,
//     so logout only clears the cookie and a copied token stays valid
//     until it expires.
//
// Both cookies are HttpOnly, SameSite=Strict, Path=/, and Secure when the
// request arrived over TLS or security.cookie_secure is set.
//
// # Failure model
//
// Authenticate never panics. Every rejection (missing, malformed, expired,
// tampered, revoked) is ErrUnauthenticated, and a bad username is
// indistinguishable from a bad password (ErrInvalidCredentials).
//
// # Usage
//
//	guard, closer, err := auth.NewGuard(&cfg.Security, checker)
//	r.With(auth.RequireAuth(guard)).Get("/data", h.Data)
package auth
