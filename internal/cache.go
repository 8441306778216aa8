package pooltop

import (
	"sync"
)

// Store keeps the latest snapshot
type Store struct {
	mu     sync.RWMutex
	latest Snapshot
	ok     bool
}

func NewStore() *Store {
	return &Store{}
}

// Publish replaces the stored snapshot
func (s *Store) Publish(snap Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.ok = true
	s.mu.Unlock()
}

// Latest returns the most recent snapshot, if any
func (s *Store) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ok
}
