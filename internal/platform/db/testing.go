package db

import (
	"context"
	"testing"

	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/jmoiron/sqlx"
)

// Setup connects to the test database, applies the migrations and
// returns the connection with a cleanup func that truncates the given tables.
func Setup(t *testing.T, tables ...string) (*sqlx.DB, func()) {
	t.Helper()
	if err := env.Load("../../.env.testing"); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("../../config.json")
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	conn, err := NewConnection(ctx, cfg.DB)
	if err != nil {
		t.Fatal(err)
	}

	if err := ApplyEmbedded(ctx, conn); err != nil {
		t.Fatal(err)
	}

	cleanUp := func() {
		for _, table := range tables {
			if _, err := conn.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE"); err != nil {
				t.Errorf("truncate %s: %v", table, err)
			}
		}
		_ = conn.Close()
	}

	return conn, cleanUp
}
