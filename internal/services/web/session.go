package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/abacusweb/abacus/internal/calc"
	"golang.org/x/text/language"
)

// sessionCookieName stores the calculator session identifier.
const sessionCookieName = "abacus_session"

// sessionIdleTTL is how long an untouched session survives before the sweep
// drops it.
const sessionIdleTTL = 30 * time.Minute

// sessionSweepInterval is how often idle sessions are collected.
const sessionSweepInterval = 5 * time.Minute

// session pairs one engine with the lock that serializes its commands. The
// engine itself is single-threaded by contract; HTTP handlers and websocket
// readers both funnel through withEngine.
type session struct {
	mu       sync.Mutex
	engine   *calc.Engine
	lastSeen time.Time
}

// withEngine runs fn with exclusive access to the session engine.
func (s *session) withEngine(fn func(*calc.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// sessionStore keeps per-browser engines in memory. Nothing is persisted;
// sessions reset on process restart.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// get returns the session for id, creating it with the given grouping locale
// when absent, and marks it as recently used.
func (st *sessionStore) get(id string, tag language.Tag) *session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		s = &session{engine: calc.NewForLanguage(tag)}
		st.sessions[id] = s
	}
	s.lastSeen = st.now()
	return s
}

// len reports the number of live sessions.
func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sweep drops sessions idle for longer than sessionIdleTTL.
func (st *sessionStore) sweep() {
	st.mu.Lock()
	defer st.mu.Unlock()
	cutoff := st.now().Add(-sessionIdleTTL)
	for id, s := range st.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}

// run sweeps idle sessions until the context ends.
func (st *sessionStore) run(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.sweep()
		}
	}
}

// newSessionID returns a random 128-bit hex identifier.
func newSessionID() (string, error) {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(raw[:]), nil
}

// writeSessionCookie sets the calculator session cookie.
func writeSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
