package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
)

// Session tracks one logged-in client. The timer fires when the session
// has been idle longer than the configured limit and removes it.
type Session struct {
	ID        string
	Username  string
	Role      string
	CreatedAt time.Time
	LastSeen  time.Time

	timer *time.Timer
}

// SessionService keeps the server-side session registry. Tokens alone are
// not enough to stay signed in: every request must belong to a live
// session, and sessions die after the idle timeout without activity.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
}

func NewSessionService(idleMinutes int) *SessionService {
	return &SessionService{
		sessions: make(map[string]*Session),
		idle:     time.Duration(idleMinutes) * time.Minute,
	}
}

// Create registers a new session and returns its ID
func (s *SessionService) Create(username, role string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := time.Now()

	sess := &Session{
		ID:        id,
		Username:  username,
		Role:      role,
		CreatedAt: now,
		LastSeen:  now,
	}
	sess.timer = time.AfterFunc(s.idle, func() {
		s.expire(id)
	})

	s.sessions[id] = sess
	return id
}

// Touch records activity on a session and resets its idle timer
func (s *SessionService) Touch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	sess.LastSeen = time.Now()
	sess.timer.Reset(s.idle)
	return nil
}

// Get returns a copy of the session if it is still live
func (s *SessionService) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	cp := *sess
	cp.timer = nil
	return cp, nil
}

// Revoke ends a session immediately (logout)
func (s *SessionService) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.timer.Stop()
		delete(s.sessions, id)
	}
}

// RevokeUser ends every session belonging to a username. Used when an
// account gets locked or deleted so stale tokens stop working at once.
func (s *SessionService) RevokeUser(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.Username == username {
			sess.timer.Stop()
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Count returns the number of live sessions
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionService) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
