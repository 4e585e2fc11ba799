// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package main is the entry point for the Footfall server.

Footfall records visit reports posted by a tracking snippet, enriches them
with device and place details, and serves them back to an authenticated
reviewer.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("footfall")
	├── StoreSupervisor ("store-layer")
	│   └── Store monitor (reconnects DuckDB)
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Session cleanup (session mode only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Visit store: DuckDB, opened once here and retried by the store monitor
 4. Enrichment: Nominatim reverse geocoding behind a circuit breaker,
    optional MaxMind GeoIP database
 5. Authentication: session or token mode
 6. HTTP Server: Chi router with middleware stack

A store that cannot be opened at startup does not stop the server. Track
requests are logged only, listing reports an error and /health/ready
returns 503 until the monitor connects.

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=3000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	DUCKDB_PATH=/data/footfall.duckdb

	AUTH_MODE=session            # session or token
	JWT_SECRET=<32+ chars>       # required in token mode
	ADMIN_USERNAME=admin
	ADMIN_PASSWORD=<password or bcrypt hash>
	SESSION_STORE=memory         # memory or badger

	CORS_ORIGINS=https://admin.example.com
	TRUSTED_PROXIES=10.0.0.0/8

# Signal Handling

On SIGINT or SIGTERM the supervisor stops every service. The HTTP server
drains in-flight requests for up to 10s, then the visit store is closed.
*/
package main
