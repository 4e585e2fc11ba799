// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package auth

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// SessionStoreType defines the type of session storage backend.
type SessionStoreType string

const (
	// SessionStoreMemory uses in-memory storage (default, not persistent).
	SessionStoreMemory SessionStoreType = "memory"

	// SessionStoreBadger uses BadgerDB for persistent session storage.
	SessionStoreBadger SessionStoreType = "badger"
)

// SessionStoreFactory creates session stores based on configuration.
type SessionStoreFactory struct {
	db *badger.DB
}

// NewSessionStoreFactory opens a BadgerDB at path when storeType is
// "badger". For "memory" or empty nothing is opened.
func NewSessionStoreFactory(storeType SessionStoreType, path string) (*SessionStoreFactory, error) {
	factory := &SessionStoreFactory{}

	switch storeType {
	case SessionStoreBadger:
		if path == "" {
			return nil, fmt.Errorf("session store path is required for badger")
		}
		opts := badger.DefaultOptions(path)
		opts.Logger = nil

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		factory.db = db
	case SessionStoreMemory, "":
	default:
		return nil, fmt.Errorf("unknown session store %q", storeType)
	}

	return factory, nil
}

// CreateStore creates a SessionStore based on the factory's configuration.
func (f *SessionStoreFactory) CreateStore() SessionStore {
	if f.db != nil {
		return NewBadgerSessionStore(f.db)
	}
	return NewMemorySessionStore()
}

// Close closes the underlying BadgerDB if one was opened.
func (f *SessionStoreFactory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}
