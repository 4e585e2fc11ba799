// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/footfall/config.yaml",
	"/etc/footfall/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// Secrets and admin credentials have no defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:              "/data/footfall.duckdb",
			MaxMemory:         "512MB",
			Threads:           0, // runtime.NumCPU()
			QueryTimeout:      10 * time.Second,
			ReconnectInterval: 30 * time.Second,
		},
		Security: SecurityConfig{
			AuthMode:               AuthModeSession,
			JWTSecret:              "",
			SessionTimeout:         24 * time.Hour,
			AdminUsername:          "",
			AdminPassword:          "",
			SessionStore:           SessionStoreMemory,
			SessionStorePath:       "/data/sessions",
			SessionCleanupInterval: 15 * time.Minute,
			CookieSecure:           false,
			CORSOrigins:            []string{"*"},
			TrustedProxies:         []string{},
			TrustForwardedHeaders:  true,
		},
		Geocode: GeocodeConfig{
			Enabled:           true,
			URL:               "https://nominatim.openstreetmap.org/reverse",
			Timeout:           5 * time.Second,
			UserAgent:         "Footfall/1.0",
			RatePerSecond:     1,
			CacheSize:         10000,
			CacheTTL:          24 * time.Hour,
			GeoIPDatabasePath: "",
		},
		API: APIConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Environment variables (highest priority)
	// JWT_SECRET -> security.jwt_secret, DUCKDB_PATH -> database.path
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, YAML lists arrive as slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Database
	"duckdb_path":           "database.path",
	"duckdb_max_memory":     "database.max_memory",
	"duckdb_threads":        "database.threads",
	"db_query_timeout":      "database.query_timeout",
	"db_reconnect_interval": "database.reconnect_interval",

	// Security
	"auth_mode":                "security.auth_mode",
	"jwt_secret":               "security.jwt_secret",
	"session_timeout":          "security.session_timeout",
	"admin_username":           "security.admin_username",
	"admin_password":           "security.admin_password",
	"session_store":            "security.session_store",
	"session_store_path":       "security.session_store_path",
	"session_cleanup_interval": "security.session_cleanup_interval",
	"cookie_secure":            "security.cookie_secure",
	"cors_origins":             "security.cors_origins",
	"trusted_proxies":          "security.trusted_proxies",
	"trust_forwarded_headers":  "security.trust_forwarded_headers",

	// Geocoding
	"geocode_enabled":         "geocode.enabled",
	"geocode_url":             "geocode.url",
	"geocode_timeout":         "geocode.timeout",
	"geocode_user_agent":      "geocode.user_agent",
	"geocode_rate_per_second": "geocode.rate_per_second",
	"geocode_cache_size":      "geocode.cache_size",
	"geocode_cache_ttl":       "geocode.cache_ttl",
	"geoip_database_path":     "geocode.geoip_database_path",

	// API
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return an empty key and are skipped so unrelated
// environment does not leak into configuration.
//
// Examples:
//   - JWT_SECRET -> security.jwt_secret
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
