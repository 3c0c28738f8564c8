package preference

import (
	"context"
	"errors"
)

var _ Store = (*StubStore)(nil)

type StubStore struct {
	GetFunc    func(ctx context.Context, userID, key string) (string, error)
	SetFunc    func(ctx context.Context, userID, key, value string) error
	DeleteFunc func(ctx context.Context, userID, key string) error
}

func (s *StubStore) Get(ctx context.Context, userID, key string) (string, error) {
	if s.GetFunc == nil {
		return "", errors.New("Get not implemented by stub")
	}
	return s.GetFunc(ctx, userID, key)
}

func (s *StubStore) Set(ctx context.Context, userID, key, value string) error {
	if s.SetFunc == nil {
		return errors.New("Set not implemented by stub")
	}
	return s.SetFunc(ctx, userID, key, value)
}

func (s *StubStore) Delete(ctx context.Context, userID, key string) error {
	if s.DeleteFunc == nil {
		return errors.New("Delete not implemented by stub")
	}
	return s.DeleteFunc(ctx, userID, key)
}
