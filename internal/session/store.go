// Package session owns the in-memory mapping from user identity to
// conversational session state.
package session

import (
	"sync"
	"time"

	"github.com/avolkov/briefgen/internal/domain"
)

// Store maps user IDs to live sessions. It is the sole owner of the live
// Session objects: every accessor returns a deep copy, and callers hand
// back a replacement copy via Replace. State is volatile — nothing
// survives a process restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	locks    map[string]*sync.Mutex
	now      func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*domain.Session),
		locks:    make(map[string]*sync.Mutex),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate returns a copy of the user's session, creating a NEW one if
// absent.
func (s *Store) GetOrCreate(userID string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = domain.NewSession(userID, s.now())
		s.sessions[userID] = sess
	}
	return sess.Clone()
}

// Get returns a copy of the user's session, or false if none exists.
// Read-only callers (status) use Get so they never block behind an
// in-flight research run holding the user's operation lock.
func (s *Store) Get(userID string) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// Replace atomically swaps the stored session for the user.
func (s *Store) Replace(userID string, sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess.Clone()
}

// Delete removes the user's session. Idempotent: deleting an absent
// session is a no-op. The user's operation lock survives deletion so an
// in-flight operation cannot race a fresh session.
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// WithLock runs fn while holding the user's operation lock. Operations on
// the same user are serialized; operations on different users proceed
// independently.
func (s *Store) WithLock(userID string, fn func()) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	fn()
}

func (s *Store) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	return mu
}
