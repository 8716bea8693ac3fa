package credentials

import (
	"sync"

	"github.com/redbridge-uk/authclient/internal/common"
)

// Store holds the current credentials of one client instance. The value is
// swapped as a whole on every update, so readers never observe a partially
// written credential set.
type Store struct {
	mu      sync.RWMutex
	current *UserCredentials
}

// NewStore returns an empty store: Current is nil until the first Replace.
func NewStore() *Store {
	return &Store{}
}

// Replace installs creds as the current value, discarding the previous one.
// The outgoing secret is wiped: once swapped out it is never read again.
func (s *Store) Replace(creds *UserCredentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current != creds {
		common.WipeByteArray(s.current.Secret)
	}
	s.current = creds
}

// Current returns the credentials installed by the last Replace, or nil if
// none were set yet.
func (s *Store) Current() *UserCredentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
