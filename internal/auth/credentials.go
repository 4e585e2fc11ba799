// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is used when the configured password is hashed at startup.
const bcryptCost = 12

// CredentialChecker validates the single admin account.
type CredentialChecker struct {
	username     string
	passwordHash []byte
}

// NewCredentialChecker hashes password unless it is already a bcrypt hash.
func NewCredentialChecker(username, password string) (*CredentialChecker, error) {
	if username == "" {
		return nil, fmt.Errorf("admin username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("admin password is required")
	}

	if isBcryptHash(password) {
		if _, err := bcrypt.Cost([]byte(password)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &CredentialChecker{username: username, passwordHash: []byte(password)}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &CredentialChecker{username: username, passwordHash: hash}, nil
}

// Check returns nil for the admin's credentials and ErrInvalidCredentials
// for anything else. Both comparisons always run so timing does not reveal
// which one failed.
func (c *CredentialChecker) Check(username, password string) error {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	if !usernameMatch || !passwordMatch {
		return ErrInvalidCredentials
	}
	return nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
