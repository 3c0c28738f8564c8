// Package session keeps per-browser state keyed by a cookie.
package session

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"
)

// KeyLanguage holds the language the site is displayed in.
const KeyLanguage = "_language"

var ErrNotFound = errors.New("session not found")

// Session is a set of string values. It records whether it was modified
// so that unchanged sessions are not written back.
type Session struct {
	ID string

	mu     sync.RWMutex
	values map[string]string
	dirty  bool
	isNew  bool
}

// New returns an empty, unsaved session.
func New(id string) *Session {
	return &Session{ID: id, values: make(map[string]string), isNew: true}
}

// Restore returns a session loaded from a store.
func Restore(id string, values map[string]string) *Session {
	if values == nil {
		values = make(map[string]string)
	}
	return &Session{ID: id, values: values}
}

func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.values[key]; ok && cur == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Values returns a copy of the session values.
func (s *Session) Values() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *Session) IsNew() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isNew
}

func (s *Session) markSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
	s.isNew = false
}

// Store persists sessions. Load returns ErrNotFound for unknown or expired ids.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type ctxKey int

const sessionCtxKey ctxKey = iota

func NewContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext returns the request session, or nil outside of the session middleware.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey).(*Session)
	return s
}
