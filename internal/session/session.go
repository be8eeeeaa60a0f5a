// Package session identifies browser sessions and owns their loader
// registries.
//
// A session stands in for one browser tab's process: loaders it has warmed
// stay memoized for as long as the session lives. Reset discards every
// loader, which is what a full page reload does. The session ID itself
// survives a reset, so per-session persisted state (the saved CV) is kept.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/admindash/pkg/loader"
)

// ErrSessionNotFound is returned when a session doesn't exist.
var ErrSessionNotFound = errors.New("session not found")

// Session is one browser session.
type Session struct {
	// ID is the cookie value, a random UUID.
	ID string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
	registry   *loader.Registry
	generation int
}

// Registry returns the session's current loader registry.
func (s *Session) Registry() *loader.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

// Generation counts resets. It starts at zero.
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// LastActive is when the session was last seen.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

// ManagerConfig configures the session manager.
type ManagerConfig struct {
	// CookieName is the session cookie.
	// Default: "admindash_session".
	CookieName string

	// IdleTimeout discards sessions not seen for this long.
	// Default: 30 minutes.
	IdleTimeout time.Duration

	// CleanupInterval is how often to sweep idle sessions.
	// Default: 1 minute.
	CleanupInterval time.Duration

	// Secure marks the cookie Secure.
	Secure bool

	// NewRegistry creates the loader registry of a new or reset session.
	// Default: loader.NewRegistry().
	NewRegistry func() *loader.Registry

	// OnStart and OnEnd are called as sessions are created and discarded.
	OnStart func(*Session)
	OnEnd   func(*Session)
}

// DefaultManagerConfig returns a ManagerConfig with sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		CookieName:      "admindash_session",
		IdleTimeout:     30 * time.Minute,
		CleanupInterval: 1 * time.Minute,
	}
}

// Manager tracks live sessions and expires idle ones.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	config   ManagerConfig
	logger   *slog.Logger
	now      func() time.Time

	done    chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// NewManager creates a manager and starts its cleanup loop. Call Shutdown
// to stop it.
func NewManager(config ManagerConfig, logger *slog.Logger) *Manager {
	d := DefaultManagerConfig()
	if config.CookieName == "" {
		config.CookieName = d.CookieName
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = d.IdleTimeout
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = d.CleanupInterval
	}
	if config.NewRegistry == nil {
		config.NewRegistry = func() *loader.Registry { return loader.NewRegistry() }
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		config:   config,
		logger:   logger.With("component", "session_manager"),
		now:      time.Now,
		done:     make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// CookieName returns the configured cookie name.
func (m *Manager) CookieName() string { return m.config.CookieName }

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Acquire returns the request's session, creating one and setting its
// cookie when the request has none, or one that expired.
func (m *Manager) Acquire(w http.ResponseWriter, r *http.Request) *Session {
	now := m.now()
	if c, err := r.Cookie(m.config.CookieName); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			if s, ok := m.resume(c.Value, now); ok {
				return s
			}
		}
	}

	s := m.create(now)
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.config.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// resume looks up a live session and marks it active. The read lock keeps
// the sweep from discarding the session between the lookup and the touch.
func (m *Manager) resume(id string, now time.Time) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if ok {
		s.touch(now)
	}
	return s, ok
}

func (m *Manager) create(now time.Time) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		lastActive: now,
		registry:   m.config.NewRegistry(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session created", "session_id", s.ID)
	if m.config.OnStart != nil {
		m.config.OnStart(s)
	}
	return s
}

// Reset discards the session's loaders. Loads still in flight finish into
// the discarded registry and are never observed again.
func (m *Manager) Reset(id string) (*Session, error) {
	reg := m.config.NewRegistry()
	s, ok := m.resume(id, m.now())
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	s.registry = reg
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	m.logger.Debug("session reset", "session_id", id, "generation", gen)
	return s, nil
}

// Remove discards a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok && m.config.OnEnd != nil {
		m.config.OnEnd(s)
	}
}

// cleanupLoop periodically removes idle sessions.
func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupExpired()
		case <-m.done:
			return
		}
	}
}

// cleanupExpired removes sessions idle for longer than IdleTimeout.
func (m *Manager) cleanupExpired() {
	now := m.now()

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.config.IdleTimeout {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	if m.config.OnEnd != nil {
		for _, s := range expired {
			m.config.OnEnd(s)
		}
	}
	if len(expired) > 0 {
		m.logger.Debug("cleaned up idle sessions",
			"count", len(expired),
			"remaining", remaining)
	}
}

// Shutdown stops the cleanup loop and discards every session.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	close(m.done)
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	if m.config.OnEnd != nil {
		for _, s := range all {
			m.config.OnEnd(s)
		}
	}

	stopped := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type contextKey struct{}

// Middleware acquires the request's session and stores it in the request
// context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Acquire(w, r)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by Middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
