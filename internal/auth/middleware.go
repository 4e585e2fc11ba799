// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/footfall/internal/logging"
)

// RequireAuth rejects requests the guard does not authenticate with 401
// {"message":"Authentication required"} and otherwise stores the claim in
// the request context.
func RequireAuth(guard Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claim, err := guard.Authenticate(r)
			if err != nil {
				logging.Ctx(r.Context()).Debug().Str("path", r.URL.Path).Msg("Unauthenticated request rejected")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				//nolint:errcheck // best effort error body
				json.NewEncoder(w).Encode(map[string]string{"message": "Authentication required"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaim(r.Context(), claim)))
		})
	}
}
