// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// MinJWTSecretLength is the minimum accepted signing secret length.
const MinJWTSecretLength = 32

// MinAdminPasswordLength is the minimum accepted admin password length.
const MinAdminPasswordLength = 8

// Validate checks configuration for errors and returns the first one found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateGeocode(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive")
	}
	if c.Database.ReconnectInterval <= 0 {
		return fmt.Errorf("DB_RECONNECT_INTERVAL must be positive")
	}
	return nil
}

// validateSecurity validates auth mode, carrier settings and admin identity.
func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case AuthModeSession:
		if err := c.validateSessionStore(); err != nil {
			return err
		}
	case AuthModeToken:
		if err := c.validateJWTSecret(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeSession, AuthModeToken, c.Security.AuthMode)
	}

	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}

	return c.validateAdminCredentials()
}

// validateJWTSecret rejects missing, short, and placeholder secrets.
// There is deliberately no built-in fallback secret.
func (c *Config) validateJWTSecret() error {
	secret := c.Security.JWTSecret
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is token")
	}
	if len(secret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if containsPlaceholder(secret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value, generate one with: openssl rand -base64 48")
	}
	return nil
}

func (c *Config) validateSessionStore() error {
	switch c.Security.SessionStore {
	case SessionStoreMemory:
	case SessionStoreBadger:
		if c.Security.SessionStorePath == "" {
			return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE is badger")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreBadger, c.Security.SessionStore)
	}
	if c.Security.SessionCleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateAdminCredentials() error {
	if c.Security.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}
	if c.Security.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if len(c.Security.AdminPassword) < MinAdminPasswordLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", MinAdminPasswordLength)
	}
	if containsPlaceholder(c.Security.AdminPassword) {
		return fmt.Errorf("ADMIN_PASSWORD contains a placeholder value")
	}
	return nil
}

func (c *Config) validateGeocode() error {
	if !c.Geocode.Enabled {
		return nil
	}
	u, err := url.Parse(c.Geocode.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GEOCODE_URL must be an absolute URL, got %q", c.Geocode.URL)
	}
	if c.Geocode.Timeout <= 0 {
		return fmt.Errorf("GEOCODE_TIMEOUT must be positive")
	}
	if c.Geocode.RatePerSecond <= 0 {
		return fmt.Errorf("GEOCODE_RATE_PER_SECOND must be positive")
	}
	if c.Geocode.CacheSize < 0 {
		return fmt.Errorf("GEOCODE_CACHE_SIZE must not be negative")
	}
	if c.Geocode.CacheSize > 0 && c.Geocode.CacheTTL <= 0 {
		return fmt.Errorf("GEOCODE_CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be >= 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be >= API_DEFAULT_PAGE_SIZE (%d)", c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// placeholderPatterns catches values copied from an example file without editing.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"YOUR_PASSWORD",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
