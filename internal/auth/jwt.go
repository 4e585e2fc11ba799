// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/footfall/internal/config"
)

// minSecretLength matches the config validation for JWT_SECRET.
const minSecretLength = 32

// Claims are the JWT claims written to the auth-token cookie.
type Claims struct {
	User          string `json:"user"`
	Authenticated bool   `json:"authenticated"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token creation and validation
type JWTManager struct {
	secret  []byte
	timeout time.Duration
}

// NewJWTManager creates a manager from the security config. The secret is
// required and there is no fallback value.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	timeout := cfg.SessionTimeout
	if timeout <= 0 {
		timeout = DefaultLifetime
	}
	return &JWTManager{
		secret:  []byte(cfg.JWTSecret),
		timeout: timeout,
	}, nil
}

// GenerateToken signs an HS256 token for user.
func (m *JWTManager) GenerateToken(user string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		User:          user,
		Authenticated: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken checks signature, algorithm, expiry and not-before, and
// returns the claims. Algorithms other than HMAC are rejected to prevent
// algorithm confusion.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Claim converts JWT claims to the carrier-independent claim.
func (c *Claims) Claim() *Claim {
	claim := &Claim{User: c.User, Authenticated: c.Authenticated}
	if c.IssuedAt != nil {
		claim.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		claim.ExpiresAt = c.ExpiresAt.Time
	}
	return claim
}
