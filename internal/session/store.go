// Package session keeps in-progress questionnaires for the HTTP API.
//
// Sessions live in memory only, in a size-bounded LRU whose entries expire
// after a period of inactivity. A session never stores a score: callers
// re-run the scorer on the current profile.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/planetprint/internal/profile"
)

const (
	defaultMaxSessions = 10000
	defaultTTL         = 30 * time.Minute
)

// ErrNotFound is returned for unknown, deleted and expired sessions.
var ErrNotFound = errors.New("session not found")

// Session is an immutable snapshot of one questionnaire in progress.
type Session struct {
	ID        string          `json:"id"`
	Profile   profile.Profile `json:"profile"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Config bounds a Store. Zero values fall back to the defaults.
type Config struct {
	MaxSessions int
	TTL         time.Duration
}

// Store is a concurrency-safe session store.
type Store struct {
	// mu serialises updates against each other and against Delete.
	mu    sync.Mutex
	cache *expirable.LRU[string, Session]
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore(cfg Config) *Store {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &Store{
		cache: expirable.NewLRU[string, Session](cfg.MaxSessions, nil, cfg.TTL),
		ttl:   cfg.TTL,
		now:   time.Now,
	}
}

// TTL returns the inactivity timeout of the store.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create starts a session with an empty profile.
func (s *Store) Create() Session {
	return s.CreateWith(profile.New())
}

// CreateWith starts a session from an existing profile.
func (s *Store) CreateWith(p profile.Profile) Session {
	now := s.now()
	sess := Session{
		ID:        ulid.Make().String(),
		Profile:   p,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cache.Add(sess.ID, sess)
	return sess
}

// Get returns the current snapshot of a session.
func (s *Store) Get(id string) (Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Apply records answers on a session and returns the new snapshot. The
// stored profile is replaced, never modified. If any answer is rejected
// the session is left unchanged.
func (s *Store) Apply(id string, answers ...profile.Answer) (Session, error) {
	return s.update(id, func(p profile.Profile) (profile.Profile, error) {
		return p.Apply(answers...)
	})
}

// Clear resets one answer of a session to unanswered.
func (s *Store) Clear(id string, field profile.Field) (Session, error) {
	return s.update(id, func(p profile.Profile) (profile.Profile, error) {
		return p.Clear(field)
	})
}

func (s *Store) update(id string, fn func(profile.Profile) (profile.Profile, error)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.cache.Get(id)
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next, err := fn(sess.Profile)
	if err != nil {
		return Session{}, err
	}
	sess.Profile = next
	sess.UpdatedAt = s.now()
	// Re-adding refreshes the expiry.
	s.cache.Add(id, sess)
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cache.Remove(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
