// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	s := newFakeServer(t, nil, nil)
	restricted := &testServer{
		handler: NewRouter(NewHandler(HandlerDeps{Guard: s.guard}), CORSConfig{
			AllowedOrigins: []string{"https://admin.example.com"},
			MaxAge:         600,
		}),
	}

	tests := []struct {
		name            string
		server          *testServer
		path            string
		origin          string
		wantOrigin      string
		wantCredentials string
	}{
		{"track from any origin", restricted, "/track", "https://shop.example.net", "*", ""},
		{"api track from any origin", restricted, "/api/track", "https://shop.example.net", "*", ""},
		{"admin from allowed origin", restricted, "/data", "https://admin.example.com", "https://admin.example.com", "true"},
		{"admin from other origin", restricted, "/data", "https://evil.example.org", "", ""},
		{"default allows any origin", s, "/login", "https://anything.example", "*", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, tt.path, nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			tt.server.handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredentials {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.wantCredentials)
			}
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	s := newFakeServer(t, nil, nil)

	rec := s.do(t, http.MethodGet, "/health/live", nil, nil, nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing from response")
	}

	rec = s.do(t, http.MethodGet, "/health/live", nil, nil, map[string]string{"X-Request-ID": "trace-42"})
	if got := rec.Header().Get("X-Request-ID"); got != "trace-42" {
		t.Errorf("X-Request-ID = %q, want trace-42", got)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := newFakeServer(t, nil, nil)
	if rec := s.do(t, http.MethodGet, "/nope", nil, nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/track", nil, nil, nil); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /track = %d, want 405", rec.Code)
	}
}
