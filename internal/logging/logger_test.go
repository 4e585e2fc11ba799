// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Environment: "staging", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	for _, field := range []string{`"level":"info"`, `"service":"footfall"`, `"env":"staging"`, `"time":`} {
		if !strings.Contains(output, field) {
			t.Errorf("expected output to contain %s, got: %s", field, output)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCtx_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-123")
	ctx = ContextWithCorrelationID(ctx, "corr-456")
	Ctx(ctx).Info().Msg("handled")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-123"`) {
		t.Errorf("missing request_id in %s", output)
	}
	if !strings.Contains(output, `"correlation_id":"corr-456"`) {
		t.Errorf("missing correlation_id in %s", output)
	}
}

func TestGenerateIDs(t *testing.T) {
	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("GenerateCorrelationID() length = %d, want 8", got)
	}
	if a, b := GenerateRequestID(), GenerateRequestID(); a == b {
		t.Error("GenerateRequestID() returned duplicate IDs")
	}
}

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := NewSlogLogger().With("service", "http-server").WithGroup("event")
	logger.Warn("service restarted", slog.Int("restarts", 2))

	output := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"http-server"`, `"event.restarts":2`, "service restarted"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSecurityLogger_MasksValues(t *testing.T) {
	var buf bytes.Buffer
	sec := NewSecurityLoggerWithLogger(NewTestLogger(&buf))

	sec.LogLogout("operator", "0123456789abcdef0123456789abcdef", "session", "1.2.3.4")

	output := buf.String()
	if strings.Contains(output, "operator") {
		t.Errorf("username not masked: %s", output)
	}
	if !strings.Contains(output, `"username":"op***"`) {
		t.Errorf("expected masked username, got %s", output)
	}
	if !strings.Contains(output, `"session_id":"0123...cdef"`) {
		t.Errorf("expected masked session id, got %s", output)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"empty session", SanitizeSessionID, "", ""},
		{"short session", SanitizeSessionID, "abc", "***"},
		{"long session", SanitizeSessionID, "abcdefghijklmnop", "abcd...mnop"},
		{"empty username", SanitizeUsername, "", ""},
		{"short username", SanitizeUsername, "ab", "***"},
		{"username", SanitizeUsername, "admin", "ad***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
