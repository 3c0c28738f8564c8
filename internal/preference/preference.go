// Package preference stores per-user key/value preferences.
package preference

import (
	"context"
	"errors"
)

const (
	// KeyDarkLang holds the language a user is previewing.
	KeyDarkLang = "dark-lang"
	// KeyPrefLang holds the language the user normally reads in.
	KeyPrefLang = "pref-lang"
)

var ErrNotFound = errors.New("preference not found")

type Preference struct {
	UserID string `db:"user_id"`
	Key    string `db:"key"`
	Value  string `db:"value"`
}

// Store reads and writes a user's preferences.
// Get returns ErrNotFound when the key is not set.
type Store interface {
	Get(ctx context.Context, userID, key string) (string, error)
	Set(ctx context.Context, userID, key, value string) error
	Delete(ctx context.Context, userID, key string) error
}
