package darklang

import (
	"context"
	"errors"
)

var _ ConfigStore = (*StubConfigStore)(nil)

type StubConfigStore struct {
	CurrentFunc func(ctx context.Context) (Config, error)
	SaveFunc    func(ctx context.Context, cfg Config) (Config, error)
}

func (s *StubConfigStore) Current(ctx context.Context) (Config, error) {
	if s.CurrentFunc == nil {
		return Config{}, errors.New("Current not implemented by stub")
	}
	return s.CurrentFunc(ctx)
}

func (s *StubConfigStore) Save(ctx context.Context, cfg Config) (Config, error) {
	if s.SaveFunc == nil {
		return Config{}, errors.New("Save not implemented by stub")
	}
	return s.SaveFunc(ctx, cfg)
}
