// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package config provides centralized configuration management for Footfall.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH, ./config.yaml, /etc/footfall/config.yaml), then
environment variables.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 3000), HTTP_TIMEOUT, ENVIRONMENT

Database (DuckDB visit store):
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - DB_QUERY_TIMEOUT, DB_RECONNECT_INTERVAL

Authentication:
  - AUTH_MODE: session (default) or token
  - JWT_SECRET: signing secret, min 32 chars, required in token mode
  - SESSION_TIMEOUT: carrier lifetime (default 24h)
  - ADMIN_USERNAME, ADMIN_PASSWORD: the single operator identity (required)
  - SESSION_STORE: memory or badger; SESSION_STORE_PATH
  - COOKIE_SECURE, CORS_ORIGINS, TRUSTED_PROXIES, TRUST_FORWARDED_HEADERS

Geocoding:
  - GEOCODE_ENABLED, GEOCODE_URL, GEOCODE_TIMEOUT, GEOCODE_USER_AGENT
  - GEOCODE_RATE_PER_SECOND, GEOIP_DATABASE_PATH

Listing:
  - API_DEFAULT_PAGE_SIZE, API_MAX_PAGE_SIZE

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load fails when a required secret or credential is missing. The server
never starts with a built-in secret.
*/
package config
