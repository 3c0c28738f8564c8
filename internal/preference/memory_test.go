package preference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/lmskit/internal/preference"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := preference.NewMemoryStore()

	if _, err := store.Get(ctx, "42", preference.KeyDarkLang); !errors.Is(err, preference.ErrNotFound) {
		t.Fatalf("store.Get() on empty store = %v, want: %v", err, preference.ErrNotFound)
	}

	if err := store.Set(ctx, "42", preference.KeyDarkLang, "es"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "42", preference.KeyDarkLang, "ar"); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "42", preference.KeyDarkLang)
	if err != nil {
		t.Fatal(err)
	}
	if want := "ar"; got != want {
		t.Errorf("store.Get() = %q, want: %q", got, want)
	}

	if _, err := store.Get(ctx, "7", preference.KeyDarkLang); !errors.Is(err, preference.ErrNotFound) {
		t.Errorf("store.Get() for other user = %v, want: %v", err, preference.ErrNotFound)
	}

	if err := store.Delete(ctx, "42", preference.KeyDarkLang); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "42", preference.KeyDarkLang); err != nil {
		t.Errorf("second store.Delete() = %v, want: nil", err)
	}

	if _, err := store.Get(ctx, "42", preference.KeyDarkLang); !errors.Is(err, preference.ErrNotFound) {
		t.Errorf("store.Get() after delete = %v, want: %v", err, preference.ErrNotFound)
	}
}
