// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthenticated is returned for any request without a valid carrier.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidCredentials is returned by Login for a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Mode names the carrier a Guard uses.
type Mode string

// Carrier modes.
const (
	ModeSession Mode = "session"
	ModeToken   Mode = "token"
)

// Claim is the verified identity carried by a request. Session entries and
// token claims both decode to a Claim before they are trusted.
type Claim struct {
	User          string    `json:"user"`
	Authenticated bool      `json:"authenticated"`
	IssuedAt      time.Time `json:"issuedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type contextKey string

const claimContextKey contextKey = "auth_claim"

// WithClaim returns a copy of ctx carrying claim.
func WithClaim(ctx context.Context, claim *Claim) context.Context {
	return context.WithValue(ctx, claimContextKey, claim)
}

// ClaimFromContext returns the claim stored by RequireAuth, or nil.
func ClaimFromContext(ctx context.Context) *Claim {
	claim, _ := ctx.Value(claimContextKey).(*Claim)
	return claim
}
