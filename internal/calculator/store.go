package calculator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned by Create when the store is full.
	ErrTooManySessions = errors.New("too many sessions")
)

// Session is one widget's calculator state.
type Session struct {
	ID       string
	State    State
	Created  time.Time
	LastUsed time.Time
}

// Store keeps sessions in memory. All state changes for a session happen
// under the store lock, so key batches for the same session never interleave.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// NewStore returns an empty store. Sessions idle for longer than ttl are
// removed by Sweep; a ttl of zero disables expiry. max caps the number of
// live sessions; zero means unlimited.
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// Create starts a session with the default state.
func (s *Store) Create() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		return Session{}, ErrTooManySessions
	}

	now := s.now()
	sess := &Session{
		ID:       uuid.New().String(),
		State:    NewState(),
		Created:  now,
		LastUsed: now,
	}
	s.sessions[sess.ID] = sess
	return *sess, nil
}

// Get returns a copy of the session.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *sess, nil
}

// Update replaces the session's state with fn's result. If fn returns an
// error the state is left untouched.
func (s *Store) Update(id string, fn func(State) (State, error)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	next, err := fn(sess.State)
	if err != nil {
		return *sess, err
	}

	sess.State = next
	sess.LastUsed = s.now()
	return *sess, nil
}

// Delete removes the session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes idle sessions and returns how many were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastUsed.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, if not
// nil, receives the number of sessions removed by each sweep.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := s.Sweep()
			if onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// RegisterCollector exposes the live session count as
// calculator_sessions_active on reg.
func (s *Store) RegisterCollector(reg prometheus.Registerer) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calculator_sessions_active",
		Help: "Number of live calculator sessions.",
	}, func() float64 {
		return float64(s.Len())
	})
	return reg.Register(gauge)
}
