package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/metrics"
)

// Store holds live sessions in memory. Nothing outlives the process.
type Store struct {
	api  API
	opts Options
	max  int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a store. maxSessions <= 0 means unbounded.
func NewStore(api API, maxSessions int, opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{api: api, opts: opts, max: maxSessions, sessions: make(map[string]*Session)}
}

// Create starts a new session.
func (st *Store) Create() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.max > 0 && len(st.sessions) >= st.max {
		return nil, fmt.Errorf("create session (limit %d): %w", st.max, domain.ErrTooManySessions)
	}
	id := uuid.NewString()
	s := New(id, st.api, st.opts)
	st.sessions[id] = s
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	st.opts.Logger.Debug("session created", zap.String("session_id", id))
	return s, nil
}

// Get returns the session with id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	return s, nil
}

// Delete closes and removes the session with id.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
		metrics.ActiveSessions.Set(float64(len(st.sessions)))
	}
	st.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	s.Close()
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Close closes every session.
func (st *Store) Close() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*Session)
	metrics.ActiveSessions.Set(0)
	st.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}
