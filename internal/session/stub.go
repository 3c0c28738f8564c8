package session

import (
	"context"
	"errors"
	"time"
)

var _ Store = (*StubStore)(nil)

type StubStore struct {
	LoadFunc   func(ctx context.Context, id string) (*Session, error)
	SaveFunc   func(ctx context.Context, s *Session, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, id string) error
}

func (s *StubStore) Load(ctx context.Context, id string) (*Session, error) {
	if s.LoadFunc == nil {
		return nil, errors.New("Load not implemented by stub")
	}
	return s.LoadFunc(ctx, id)
}

func (s *StubStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	if s.SaveFunc == nil {
		return errors.New("Save not implemented by stub")
	}
	return s.SaveFunc(ctx, sess, ttl)
}

func (s *StubStore) Delete(ctx context.Context, id string) error {
	if s.DeleteFunc == nil {
		return errors.New("Delete not implemented by stub")
	}
	return s.DeleteFunc(ctx, id)
}
