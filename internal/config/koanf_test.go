// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const testSecret = "k3v9Qm2Lx8Rt5Wz1Hn7Bc4Jd6Fg0Sa2Pq8Ue5Yi3"

// setRequiredEnv sets the minimum environment for a valid configuration.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_USERNAME", "operator")
	t.Setenv("ADMIN_PASSWORD", "s3cure-passw0rd")
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Security.AuthMode != AuthModeSession {
		t.Errorf("Security.AuthMode = %q, want %q", cfg.Security.AuthMode, AuthModeSession)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 24h", cfg.Security.SessionTimeout)
	}
	if cfg.Security.JWTSecret != "" {
		t.Error("Security.JWTSecret must not have a default")
	}
	if cfg.Security.AdminPassword != "" {
		t.Error("Security.AdminPassword must not have a default")
	}
	if cfg.API.DefaultPageSize != 10 {
		t.Errorf("API.DefaultPageSize = %d, want 10", cfg.API.DefaultPageSize)
	}
	if cfg.Geocode.Timeout != 5*time.Second {
		t.Errorf("Geocode.Timeout = %v, want 5s", cfg.Geocode.Timeout)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("AUTH_MODE", "token")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SESSION_TIMEOUT", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example.org, https://b.example.org")
	t.Setenv("GEOCODE_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088", cfg.Server.Port)
	}
	if cfg.Security.AuthMode != AuthModeToken {
		t.Errorf("Security.AuthMode = %q, want token", cfg.Security.AuthMode)
	}
	if cfg.Security.SessionTimeout != 2*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 2h", cfg.Security.SessionTimeout)
	}
	wantOrigins := []string{"https://a.example.org", "https://b.example.org"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.Geocode.Enabled {
		t.Error("Geocode.Enabled = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_MissingSecretFailsFast(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_MODE", "token")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("LoadWithKoanf() error = nil, want error for missing JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error = %v, want mention of JWT_SECRET", err)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	setRequiredEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "footfall.yaml")
	content := `
server:
  port: 9090
database:
  path: /tmp/visits.duckdb
security:
  trusted_proxies:
    - 10.0.0.1
    - 10.0.0.2
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/visits.duckdb" {
		t.Errorf("Database.Path = %q, want /tmp/visits.duckdb", cfg.Database.Path)
	}
	if len(cfg.Security.TrustedProxies) != 2 {
		t.Errorf("Security.TrustedProxies = %v, want 2 entries", cfg.Security.TrustedProxies)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"JWT_SECRET", "security.jwt_secret"},
		{"DUCKDB_PATH", "database.path"},
		{"HTTP_PORT", "server.port"},
		{"GEOIP_DATABASE_PATH", "geocode.geoip_database_path"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
