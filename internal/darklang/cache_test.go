package darklang_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdiebergado/lmskit/internal/darklang"
)

type countingStore struct {
	darklang.ConfigStore
	calls int
}

func (c *countingStore) Current(ctx context.Context) (darklang.Config, error) {
	c.calls++
	return c.ConfigStore.Current(ctx)
}

func TestCachedConfigStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backing := &countingStore{ConfigStore: darklang.NewMemoryConfigStore(darklang.Config{Enabled: true, ReleasedLanguages: "rel"})}

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := darklang.NewCachedConfigStore(backing, time.Minute)
	cache.SetClock(func() time.Time { return now })

	for range 3 {
		if _, err := cache.Current(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := backing.calls, 1; got != want {
		t.Errorf("backing calls within ttl = %d, want: %d", got, want)
	}

	now = now.Add(2 * time.Minute)
	if _, err := cache.Current(ctx); err != nil {
		t.Fatal(err)
	}
	if got, want := backing.calls, 2; got != want {
		t.Errorf("backing calls after ttl = %d, want: %d", got, want)
	}

	if _, err := cache.Save(ctx, darklang.Config{Enabled: false, ChangedBy: "7"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := cache.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Enabled {
		t.Error("cache.Current().Enabled = true after save, want: false")
	}
	if got, want := backing.calls, 3; got != want {
		t.Errorf("backing calls after save = %d, want: %d", got, want)
	}
}

func TestCachedConfigStore_ErrorNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fail := true
	stub := &darklang.StubConfigStore{
		CurrentFunc: func(context.Context) (darklang.Config, error) {
			if fail {
				return darklang.Config{}, errors.New("timeout")
			}
			return darklang.Config{Enabled: true}, nil
		},
	}

	cache := darklang.NewCachedConfigStore(stub, time.Hour)
	if _, err := cache.Current(ctx); err == nil {
		t.Fatal("cache.Current() = nil error, want: error")
	}

	fail = false
	cfg, err := cache.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Enabled {
		t.Error("cache.Current().Enabled = false, want: true")
	}
}
