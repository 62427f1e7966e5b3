package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/contactx/session"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the session ID.
const SessionCookie = "contactx_session"

type sessionEntry struct {
	controller *session.Controller
	lastSeen   time.Time
}

// SessionStore keeps one Controller per browser session in memory. Idle
// sessions are dropped after the TTL; contacts are never persisted.
type SessionStore struct {
	newController func(r *http.Request) *session.Controller
	ttl           time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionStore returns a store that creates controllers with fn.
func NewSessionStore(fn func(r *http.Request) *session.Controller, ttl time.Duration) *SessionStore {
	return &SessionStore{
		newController: fn,
		ttl:           ttl,
		sessions:      make(map[string]*sessionEntry),
	}
}

// Controller returns the controller for the request's session, creating a
// session (and setting its cookie) if the request has none or it expired.
func (s *SessionStore) Controller(w http.ResponseWriter, r *http.Request) *session.Controller {
	now := s.now()

	s.mu.Lock()
	s.sweep(now)
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if e, ok := s.sessions[cookie.Value]; ok {
			e.lastSeen = now
			s.mu.Unlock()
			return e.controller
		}
	}
	s.mu.Unlock()

	// Theme initialization may hit the preference store; keep it outside
	// the lock.
	c := s.newController(r)
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{controller: c, lastSeen: now}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweep(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
