// Package memstore is an in-process session store for development and tests.
// State is lost on restart and is not shared between replicas.
package memstore

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"
)

// ErrEmptyScope is returned when a write targets a blank scope id.
var ErrEmptyScope = errors.New("session scope id cannot be empty")

type scope struct {
	fields    map[string]string
	expiresAt time.Time
}

// Store keeps session scopes in memory with a sliding TTL. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	scopes map[string]*scope
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store whose scopes expire after ttl of inactivity. A non-positive ttl disables expiry.
func New(ttl time.Duration, opts ...Option) *Store {
	s := &Store{scopes: make(map[string]*scope), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lookup returns the live scope, evicting it when expired. Callers hold mu.
func (s *Store) lookup(id string) *scope {
	sc, ok := s.scopes[id]
	if !ok {
		return nil
	}
	if !sc.expiresAt.IsZero() && !s.now().Before(sc.expiresAt) {
		delete(s.scopes, id)
		return nil
	}
	return sc
}

// Load returns a copy of the scope's fields and slides its expiry.
func (s *Store) Load(_ context.Context, scopeID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.lookup(scopeID)
	if sc == nil {
		return map[string]string{}, nil
	}
	s.touch(sc)
	return maps.Clone(sc.fields), nil
}

func (s *Store) touch(sc *scope) {
	if s.ttl > 0 {
		sc.expiresAt = s.now().Add(s.ttl)
	}
}

func (s *Store) Save(_ context.Context, scopeID string, fields map[string]string) error {
	if scopeID == "" {
		return ErrEmptyScope
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.lookup(scopeID)
	if sc == nil {
		sc = &scope{fields: make(map[string]string, len(fields))}
		s.scopes[scopeID] = sc
	}
	maps.Copy(sc.fields, fields)
	s.touch(sc)
	return nil
}

func (s *Store) Remove(_ context.Context, scopeID string, fields ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.lookup(scopeID)
	if sc == nil {
		return nil
	}
	for _, f := range fields {
		delete(sc.fields, f)
	}
	if len(sc.fields) == 0 {
		delete(s.scopes, scopeID)
	}
	return nil
}

func (s *Store) Destroy(_ context.Context, scopeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scopes, scopeID)
	return nil
}

// Len reports the number of live scopes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id := range s.scopes {
		if s.lookup(id) != nil {
			n++
		}
	}
	return n
}
