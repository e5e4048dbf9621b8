// Package session holds the server-side session cache: the authenticated
// flag and user identifier recorded at login, cleared on logout and on
// account deletion. It is the sole arbiter of whether a token still maps
// to a live session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session records one authenticated login
type Session struct {
	ID        string
	UserID    uuid.UUID
	Email     string
	CreatedAt time.Time
}

// Store is an in-memory session cache safe for concurrent use
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Put registers a session under its ID
func (s *Store) Put(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get looks up a session by ID
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete removes a single session
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// DeleteUser removes every session belonging to a user
func (s *Store) DeleteUser(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
