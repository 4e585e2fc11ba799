// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/footfall/internal/auth"
	"github.com/tomtom215/footfall/internal/config"
	"github.com/tomtom215/footfall/internal/database"
	"github.com/tomtom215/footfall/internal/models"
	"github.com/tomtom215/footfall/internal/visits"
)

const (
	testUser     = "admin"
	testPassword = "correct-horse-battery"
	testSecret   = "0123456789abcdef0123456789abcdef"

	chromeUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
)

// testDBSemaphore keeps one DuckDB instance alive at a time.
var testDBSemaphore = make(chan struct{}, 1)

var (
	checkerOnce sync.Once
	checker     *auth.CredentialChecker
)

// testChecker uses a low-cost pre-hashed password to keep tests fast.
func testChecker(t *testing.T) *auth.CredentialChecker {
	t.Helper()
	checkerOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("GenerateFromPassword() error = %v", err)
		}
		c, err := auth.NewCredentialChecker(testUser, string(hash))
		if err != nil {
			t.Fatalf("NewCredentialChecker() error = %v", err)
		}
		checker = c
	})
	return checker
}

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.Open(context.Background(), &config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "256MB",
		QueryTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestGuard(t *testing.T, mode string) auth.Guard {
	t.Helper()
	guard, closer, err := auth.NewGuard(&config.SecurityConfig{
		AuthMode:       mode,
		JWTSecret:      testSecret,
		SessionTimeout: time.Hour,
		SessionStore:   config.SessionStoreMemory,
	}, testChecker(t))
	if err != nil {
		t.Fatalf("NewGuard(%s) error = %v", mode, err)
	}
	t.Cleanup(func() { _ = closer.Close() })
	return guard
}

// testServer wires real components around store.
type testServer struct {
	handler http.Handler
	guard   auth.Guard
}

func newTestServer(t *testing.T, store visits.Store, mode string) *testServer {
	t.Helper()
	guard := newTestGuard(t, mode)
	h := NewHandler(HandlerDeps{
		Recorder: visits.NewRecorder(store),
		Query:    visits.NewQuery(store, 10, 100),
		Store:    store,
		Guard:    guard,
	})
	return &testServer{handler: NewRouter(h, DefaultCORSConfig()), guard: guard}
}

// newFakeServer wires the given fakes; nil arguments get the real
// components over an unready store.
func newFakeServer(t *testing.T, rec VisitRecorder, lister VisitLister) *testServer {
	t.Helper()
	store := database.New(&config.DatabaseConfig{Path: ":memory:"})
	if rec == nil {
		rec = visits.NewRecorder(store)
	}
	if lister == nil {
		lister = visits.NewQuery(store, 10, 100)
	}
	guard := newTestGuard(t, config.AuthModeToken)
	h := NewHandler(HandlerDeps{Recorder: rec, Query: lister, Store: store, Guard: guard})
	return &testServer{handler: NewRouter(h, DefaultCORSConfig()), guard: guard}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies []*http.Cookie, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) []*http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/login", LoginRequest{Username: testUser, Password: testPassword}, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no cookie")
	}
	return cookies
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func ptr(f float64) *float64 { return &f }

func seedVisit(t *testing.T, db *database.DB, id, ip, browser string, ts time.Time) {
	t.Helper()
	v := &models.VisitRecord{
		ID:        id,
		Timestamp: ts,
		Device: models.Device{
			Browser:        browser,
			BrowserVersion: models.Unknown,
			OS:             "Windows",
			OSVersion:      models.Unknown,
			DeviceType:     models.DefaultDeviceType,
			DeviceModel:    models.Unknown,
			DeviceVendor:   models.Unknown,
		},
		Network:   models.Network{IP: ip},
		SessionID: models.AnonymousSession,
	}
	if err := db.InsertVisit(context.Background(), v); err != nil {
		t.Fatalf("InsertVisit(%s) error = %v", id, err)
	}
}
