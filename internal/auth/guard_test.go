// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/footfall/internal/config"
)

// guards returns one guard per mode so every behaviour is checked against both.
func guards(t *testing.T) map[string]Guard {
	return map[string]Guard{
		"session": newTestSessionGuard(t),
		"token":   newTestTokenGuard(t),
	}
}

func TestGuard_LoginThenAuthenticate(t *testing.T) {
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			cookies := login(t, g)
			if len(cookies) != 1 {
				t.Fatalf("Login() set %d cookies, want 1", len(cookies))
			}
			c := cookies[0]
			if !c.HttpOnly || c.SameSite != http.SameSiteStrictMode || c.Path != "/" {
				t.Errorf("cookie = %+v, want HttpOnly SameSite=Strict Path=/", c)
			}

			req := requestWithCookies(cookies)
			first, err := g.Authenticate(req)
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if first.User != testUser || !first.Authenticated {
				t.Errorf("Authenticate() = %+v, want authenticated %s", first, testUser)
			}

			second, err := g.Authenticate(req)
			if err != nil {
				t.Fatalf("second Authenticate() error = %v", err)
			}
			if *second != *first {
				t.Errorf("Authenticate() not idempotent: %+v then %+v", first, second)
			}
		})
	}
}

func TestGuard_BadLoginSetsNoCookie(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", testUser, "nope-nope-nope"},
		{"wrong username", "root", testPassword},
		{"empty", "", ""},
	}

	for name, g := range guards(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/login", nil)
				_, err := g.Login(rec, req, tt.username, tt.password)
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
				}
				if cookies := rec.Result().Cookies(); len(cookies) != 0 {
					t.Errorf("Login() set cookies %v, want none", cookies)
				}
			})
		}
	}
}

func TestGuard_RejectsMissingAndGarbage(t *testing.T) {
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := g.Authenticate(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrUnauthenticated) {
				t.Errorf("Authenticate(no cookie) error = %v, want ErrUnauthenticated", err)
			}

			req := requestWithCookies([]*http.Cookie{
				{Name: SessionCookieName, Value: "garbage"},
				{Name: TokenCookieName, Value: "not.a.jwt"},
			})
			if _, err := g.Authenticate(req); !errors.Is(err, ErrUnauthenticated) {
				t.Errorf("Authenticate(garbage) error = %v, want ErrUnauthenticated", err)
			}
		})
	}
}

func TestGuard_Logout(t *testing.T) {
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			cookies := login(t, g)

			rec := httptest.NewRecorder()
			if err := g.Logout(rec, requestWithCookies(cookies)); err != nil {
				t.Fatalf("Logout() error = %v", err)
			}
			cleared := rec.Result().Cookies()
			if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
				t.Errorf("Logout() cookies = %v, want one expired cookie", cleared)
			}

			if name == "session" {
				if _, err := g.Authenticate(requestWithCookies(cookies)); !errors.Is(err, ErrUnauthenticated) {
					t.Errorf("Authenticate() after logout error = %v, want ErrUnauthenticated", err)
				}
			}
		})
	}
}

func TestGuard_LogoutWithoutCarrier(t *testing.T) {
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := g.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil)); err != nil {
				t.Errorf("Logout() error = %v, want nil", err)
			}
		})
	}
}

func TestNewGuard(t *testing.T) {
	base := config.SecurityConfig{
		AdminUsername:  testUser,
		AdminPassword:  testPassword,
		SessionTimeout: time.Hour,
	}

	tests := []struct {
		name     string
		mutate   func(*config.SecurityConfig)
		wantMode Mode
		wantErr  bool
	}{
		{
			name:     "session default",
			mutate:   func(c *config.SecurityConfig) {},
			wantMode: ModeSession,
		},
		{
			name: "token",
			mutate: func(c *config.SecurityConfig) {
				c.AuthMode = config.AuthModeToken
				c.JWTSecret = testSecret
			},
			wantMode: ModeToken,
		},
		{
			name:    "token without secret",
			mutate:  func(c *config.SecurityConfig) { c.AuthMode = config.AuthModeToken },
			wantErr: true,
		},
		{
			name: "token with short secret",
			mutate: func(c *config.SecurityConfig) {
				c.AuthMode = config.AuthModeToken
				c.JWTSecret = "short"
			},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			mutate:  func(c *config.SecurityConfig) { c.AuthMode = "ldap" },
			wantErr: true,
		},
		{
			name:    "badger without path",
			mutate:  func(c *config.SecurityConfig) { c.SessionStore = config.SessionStoreBadger },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			g, closer, err := NewGuard(&cfg, testChecker(t))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGuard() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer closer.Close()
			if g.Mode() != tt.wantMode {
				t.Errorf("Mode() = %v, want %v", g.Mode(), tt.wantMode)
			}
		})
	}
}

func TestCookieSecureFlag(t *testing.T) {
	opts := CookieOptions{MaxAge: time.Hour}

	plain := httptest.NewRequest(http.MethodPost, "/login", nil)
	if opts.secureFor(plain) {
		t.Error("secureFor(plain http) = true, want false")
	}

	proxied := httptest.NewRequest(http.MethodPost, "/login", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if !opts.secureFor(proxied) {
		t.Error("secureFor(forwarded https) = false, want true")
	}

	forced := CookieOptions{Secure: true}
	if !forced.secureFor(plain) {
		t.Error("secureFor(forced) = false, want true")
	}
}
