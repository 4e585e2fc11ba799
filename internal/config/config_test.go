// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.AdminUsername = "operator"
	cfg.Security.AdminPassword = "s3cure-passw0rd"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid session mode",
			mutate: func(c *Config) {},
		},
		{
			name: "valid token mode",
			mutate: func(c *Config) {
				c.Security.AuthMode = AuthModeToken
				c.Security.JWTSecret = testSecret
			},
		},
		{
			name: "token mode without secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = AuthModeToken
			},
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "token mode with short secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = AuthModeToken
				c.Security.JWTSecret = "short"
			},
			wantErr: "at least 32",
		},
		{
			name: "token mode with placeholder secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = AuthModeToken
				c.Security.JWTSecret = "CHANGEME-CHANGEME-CHANGEME-CHANGEME"
			},
			wantErr: "placeholder",
		},
		{
			name: "unknown auth mode",
			mutate: func(c *Config) {
				c.Security.AuthMode = "oauth"
			},
			wantErr: "AUTH_MODE",
		},
		{
			name: "badger store without path",
			mutate: func(c *Config) {
				c.Security.SessionStore = SessionStoreBadger
				c.Security.SessionStorePath = ""
			},
			wantErr: "SESSION_STORE_PATH",
		},
		{
			name: "missing admin username",
			mutate: func(c *Config) {
				c.Security.AdminUsername = ""
			},
			wantErr: "ADMIN_USERNAME",
		},
		{
			name: "short admin password",
			mutate: func(c *Config) {
				c.Security.AdminPassword = "abc"
			},
			wantErr: "ADMIN_PASSWORD",
		},
		{
			name: "relative geocode url",
			mutate: func(c *Config) {
				c.Geocode.URL = "/reverse"
			},
			wantErr: "GEOCODE_URL",
		},
		{
			name: "geocode url ignored when disabled",
			mutate: func(c *Config) {
				c.Geocode.Enabled = false
				c.Geocode.URL = ""
			},
		},
		{
			name: "geocode cache without ttl",
			mutate: func(c *Config) {
				c.Geocode.CacheTTL = 0
			},
			wantErr: "GEOCODE_CACHE_TTL",
		},
		{
			name: "max page size below default",
			mutate: func(c *Config) {
				c.API.MaxPageSize = 5
			},
			wantErr: "API_MAX_PAGE_SIZE",
		},
		{
			name: "bad log format",
			mutate: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: "LOG_FORMAT",
		},
		{
			name: "port out of range",
			mutate: func(c *Config) {
				c.Server.Port = 70000
			},
			wantErr: "HTTP_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		env      string
		wantProd bool
		wantDev  bool
	}{
		{"production", true, false},
		{"prod", true, false},
		{"PRODUCTION", true, false},
		{"development", false, true},
		{"", false, true},
		{"staging", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Environment: tt.env}}
			if got := cfg.IsProduction(); got != tt.wantProd {
				t.Errorf("IsProduction() = %v, want %v", got, tt.wantProd)
			}
			if got := cfg.IsDevelopment(); got != tt.wantDev {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.wantDev)
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 3000}
	if got := s.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:3000", got)
	}
}
