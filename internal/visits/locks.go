// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package visits

import "sync"

// ipLocks hands out one mutex per IP address. Entries are reference counted
// and dropped when the last holder releases, so the map only ever holds IPs
// with a request in flight.
type ipLocks struct {
	mu    sync.Mutex
	locks map[string]*ipLock
}

type ipLock struct {
	sync.Mutex
	refs int
}

func newIPLocks() *ipLocks {
	return &ipLocks{locks: make(map[string]*ipLock)}
}

// acquire blocks until the caller holds the lock for ip.
func (l *ipLocks) acquire(ip string) *ipLock {
	l.mu.Lock()
	lock, ok := l.locks[ip]
	if !ok {
		lock = &ipLock{}
		l.locks[ip] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()
	return lock
}

// release unlocks and forgets the entry when nobody else is waiting on it.
func (l *ipLocks) release(ip string, lock *ipLock) {
	lock.Unlock()

	l.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, ip)
	}
	l.mu.Unlock()
}

// size returns the number of live entries.
func (l *ipLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
