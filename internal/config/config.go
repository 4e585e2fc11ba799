// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Geocode  GeocodeConfig  `koanf:"geocode"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds DuckDB settings for the visit store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// QueryTimeout bounds every store call issued by a request.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// ReconnectInterval is how often the store monitor pings the database
	// and, when it is down, tries to reopen it.
	ReconnectInterval time.Duration `koanf:"reconnect_interval"`
}

// Auth modes.
const (
	AuthModeSession = "session"
	AuthModeToken   = "token"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreBadger = "badger"
)

// SecurityConfig holds authentication and HTTP edge settings.
type SecurityConfig struct {
	// AuthMode selects the carrier: "session" (server-side store keyed by a
	// cookie) or "token" (signed JWT in a cookie).
	AuthMode string `koanf:"auth_mode"`

	// JWTSecret signs tokens in token mode. Required, no fallback.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the lifetime of both carriers.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	AdminUsername string `koanf:"admin_username"`

	// AdminPassword may be plain text or a bcrypt hash.
	AdminPassword string `koanf:"admin_password"`

	// SessionStore is "memory" (default) or "badger".
	SessionStore string `koanf:"session_store"`
	// SessionStorePath is the BadgerDB directory (required when session_store=badger).
	SessionStorePath       string        `koanf:"session_store_path"`
	SessionCleanupInterval time.Duration `koanf:"session_cleanup_interval"`

	// CookieSecure forces the Secure attribute even when TLS is terminated upstream.
	CookieSecure bool `koanf:"cookie_secure"`

	CORSOrigins    []string `koanf:"cors_origins"`
	TrustedProxies []string `koanf:"trusted_proxies"`

	// TrustForwardedHeaders honours X-Forwarded-For and X-Real-IP from any
	// peer. When false, only peers listed in TrustedProxies are believed.
	TrustForwardedHeaders bool `koanf:"trust_forwarded_headers"`
}

// GeocodeConfig holds reverse geocoding and IP database enrichment settings.
type GeocodeConfig struct {
	Enabled   bool          `koanf:"enabled"`
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user_agent"`

	// RatePerSecond throttles outbound lookups to respect the provider's usage policy.
	RatePerSecond float64 `koanf:"rate_per_second"`

	// CacheSize and CacheTTL bound the reverse geocoding result cache.
	// A zero CacheSize disables it.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// GeoIPDatabasePath points at a MaxMind City database. Empty disables IP enrichment.
	GeoIPDatabasePath string `koanf:"geoip_database_path"`
}

// APIConfig holds listing limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
