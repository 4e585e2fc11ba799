// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/footfall/internal/config"
)

const (
	testUser     = "admin"
	testPassword = "correct-horse-battery"
	testSecret   = "0123456789abcdef0123456789abcdef"
)

var (
	checkerOnce sync.Once
	checker     *CredentialChecker
)

// testChecker hashes once per test binary; bcrypt at cost 12 is slow.
func testChecker(t *testing.T) *CredentialChecker {
	t.Helper()
	checkerOnce.Do(func() {
		c, err := NewCredentialChecker(testUser, testPassword)
		if err != nil {
			t.Fatalf("NewCredentialChecker() error = %v", err)
		}
		checker = c
	})
	return checker
}

func newTestSessionGuard(t *testing.T) *SessionGuard {
	t.Helper()
	return NewSessionGuard(NewMemorySessionStore(), testChecker(t), CookieOptions{MaxAge: time.Hour})
}

func newTestTokenGuard(t *testing.T) *TokenGuard {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return NewTokenGuard(m, testChecker(t), CookieOptions{})
}

// login performs a successful login and returns the cookies it set.
func login(t *testing.T, g Guard) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if _, err := g.Login(rec, req, testUser, testPassword); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return rec.Result().Cookies()
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func cookiesFor(name, value string) []*http.Cookie {
	return []*http.Cookie{{Name: name, Value: value}}
}
