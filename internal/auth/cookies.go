// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"net/http"
	"time"
)

// Cookie names for the two carriers.
const (
	SessionCookieName = "sessionId"
	TokenCookieName   = "auth-token"
)

// DefaultLifetime applies when no session timeout is configured.
const DefaultLifetime = 24 * time.Hour

// CookieOptions controls the carrier cookie.
type CookieOptions struct {
	// Secure forces the Secure attribute even on plain HTTP requests.
	Secure bool
	MaxAge time.Duration
}

// set writes an HttpOnly, SameSite=Strict cookie.
func (c CookieOptions) set(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		Secure:   c.secureFor(r),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clear expires the cookie on the client.
func (c CookieOptions) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   c.secureFor(r),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieOptions) secureFor(r *http.Request) bool {
	return c.Secure || r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
