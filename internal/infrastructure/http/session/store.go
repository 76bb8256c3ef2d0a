// Package session provides cookie-backed session storage for the web
// surface. Each browser session maps to one auth.Session value; the
// store never hands out shared state.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"go.uber.org/zap"
)

const cookieName = "leos-kitchen-session"

type record struct {
	state     auth.Session
	expiresAt time.Time
}

// Store manages browser sessions in memory.
type Store struct {
	mu      sync.RWMutex
	records map[string]*record

	maxAge time.Duration
	secure bool
	logger *zap.Logger

	done chan struct{}
}

// NewStore creates a session store and starts its expiry sweeper.
func NewStore(maxAge time.Duration, secure bool, logger *zap.Logger) *Store {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	s := &Store{
		records: make(map[string]*record),
		maxAge:  maxAge,
		secure:  secure,
		logger:  logger.Named("session-store"),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Load returns the session state for the request. A missing, unknown or
// expired cookie yields a fresh anonymous session.
func (s *Store) Load(r *http.Request) auth.Session {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return auth.NewSession()
	}

	s.mu.RLock()
	rec, ok := s.records[cookie.Value]
	s.mu.RUnlock()

	if !ok || time.Now().After(rec.expiresAt) {
		return auth.NewSession()
	}
	return rec.state
}

// Save persists the session state and sets the cookie. An anonymous state
// still gets a session so logout survives a refresh. Crossing from
// anonymous to authenticated rotates the session id, so an id observed
// before login cannot be replayed afterwards.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, state auth.Session) {
	id := ""
	if cookie, err := r.Cookie(cookieName); err == nil {
		s.mu.RLock()
		rec, known := s.records[cookie.Value]
		s.mu.RUnlock()
		if known {
			if state.Authenticated && !rec.state.Authenticated {
				s.mu.Lock()
				delete(s.records, cookie.Value)
				s.mu.Unlock()
			} else {
				id = cookie.Value
			}
		}
	}
	if id == "" {
		id = newSessionID()
	}

	expires := time.Now().Add(s.maxAge)
	s.mu.Lock()
	s.records[id] = &record{state: state, expiresAt: expires}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
		MaxAge:   int(s.maxAge.Seconds()),
	})
}

// Destroy forgets the request's session and clears the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(cookieName); err == nil {
		s.mu.Lock()
		delete(s.records, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Close stops the expiry sweeper.
func (s *Store) Close() {
	close(s.done)
}

func (s *Store) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, rec := range s.records {
				if now.After(rec.expiresAt) {
					delete(s.records, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func newSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("session id generation failed: " + err.Error())
	}
	return base64.URLEncoding.EncodeToString(b)
}
