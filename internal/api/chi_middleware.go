// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// trackPath is the ingestion route suffix. It matches both /track and
// /api/track.
const trackPath = "/track"

// CORSConfig holds the allowed origins of the non-ingestion routes.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int // seconds
}

// DefaultCORSConfig allows any origin without credentials.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		MaxAge:         86400,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// corsMiddleware picks the CORS policy per path. It must run before routing
// so OPTIONS preflights are answered even though no route declares OPTIONS.
//
// Ingestion accepts any origin and never credentials, since the tracking
// snippet is embedded on third-party pages. The other routes use the
// configured origins and allow credentials only for an explicit list.
func corsMiddleware(cfg CORSConfig) func(http.Handler) http.Handler {
	ingest := cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           cfg.MaxAge,
	})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	admin := cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !hasWildcard(origins),
		MaxAge:           cfg.MaxAge,
	})

	return func(next http.Handler) http.Handler {
		ingestNext := ingest(next)
		adminNext := admin(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, trackPath) {
				ingestNext.ServeHTTP(w, r)
				return
			}
			adminNext.ServeHTTP(w, r)
		})
	}
}

func hasWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
