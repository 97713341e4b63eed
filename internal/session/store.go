// Package session keeps short-lived per-conversation state so a rider can
// ask a question, then refine or select from the previous answer without
// repeating everything.
package session

import (
	"sync"
	"time"
)

const (
	DefaultTTL             = 30 * time.Minute
	defaultCleanupInterval = 5 * time.Minute
)

// Bag is the free-form state of one conversation.
type Bag map[string]any

type entry struct {
	bag       Bag
	expiresAt time.Time
}

// Store is an in-memory TTL session store. Entries refresh their TTL on
// every update and expire silently when the rider goes quiet.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stop    chan struct{}
	stopped sync.Once
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Get returns a copy of the session's state, or an empty Bag when the
// session is unknown or expired.
func (s *Store) Get(sessionID string) Bag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		return Bag{}
	}
	return cloneBag(e.bag)
}

// Update merges the partial state into the session, refreshes its TTL and
// returns the merged copy. A nil value deletes that key.
func (s *Store) Update(sessionID string, partial Bag) Bag {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		e = entry{bag: Bag{}}
	}
	for k, v := range partial {
		if v == nil {
			delete(e.bag, k)
			continue
		}
		e.bag[k] = v
	}
	e.expiresAt = time.Now().Add(s.ttl)
	s.entries[sessionID] = e
	return cloneBag(e.bag)
}

// Clear removes one session.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Len counts the live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	n := 0
	for _, e := range s.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (s *Store) Stop() {
	s.stopped.Do(func() { close(s.stop) })
}

func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func cloneBag(b Bag) Bag {
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
