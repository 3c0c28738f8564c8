package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/darklang"
	"github.com/ferdiebergado/lmskit/internal/grades"
	"github.com/ferdiebergado/lmskit/internal/pkg/security"
	"github.com/ferdiebergado/lmskit/internal/platform/db"
	"github.com/ferdiebergado/lmskit/internal/platform/jwt"
	"github.com/ferdiebergado/lmskit/internal/platform/router"
	"github.com/ferdiebergado/lmskit/internal/platform/validation"
	"github.com/ferdiebergado/lmskit/internal/preference"
	"github.com/ferdiebergado/lmskit/internal/session"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
)

// Provider holds the dependencies the routes are built from.
type Provider struct {
	Signer      jwt.Signer
	Validator   validation.Validator
	Router      router.Router
	Randomizer  security.Randomizer
	Sessions    session.Store
	Preferences preference.Store
	Configs     darklang.ConfigStore
	Grades      grades.Store
	Registerer  prometheus.Registerer
	Gatherer    prometheus.Gatherer
}

// newProvider wires the postgres and redis backed stores. The returned func
// releases what the provider opened.
func newProvider(ctx context.Context, opts *config.Options, securityKey string, conn *sqlx.DB) (*Provider, func(), error) {
	randomizer := security.StdlibRandomizer

	sessions, closeSessions, err := newSessionStore(ctx, opts.Redis)
	if err != nil {
		return nil, nil, err
	}

	configs := darklang.NewCachedConfigStore(darklang.NewRepository(conn), opts.DarkLang.CacheTTL.Duration)
	validator := validation.NewGoPlaygroundValidator()

	provider := &Provider{
		Signer:      jwt.NewGolangJWTSigner(opts.JWT, securityKey, randomizer),
		Validator:   validator,
		Router:      router.NewGoexpressRouter(),
		Randomizer:  randomizer,
		Sessions:    sessions,
		Preferences: preference.NewRepository(conn),
		Configs:     configs,
		Grades:      grades.NewRepository(conn, db.NewSQLTxManager(conn), validator),
		Registerer:  prometheus.DefaultRegisterer,
		Gatherer:    prometheus.DefaultGatherer,
	}

	return provider, closeSessions, nil
}

func newSessionStore(ctx context.Context, opts *config.RedisOptions) (session.Store, func(), error) {
	if opts == nil || opts.Addr == "" {
		slog.Warn("Redis address is not set, sessions are kept in memory.")
		return session.NewMemoryStore(), func() {}, nil
	}

	slog.Info("Connecting to redis...", "addr", opts.Addr)
	client, err := session.NewRedisClient(ctx, opts.Addr, opts.Password, opts.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect session store: %w", err)
	}
	slog.Info("Connected to redis.")

	closeFn := func() {
		if err := client.Close(); err != nil {
			slog.Error("failed to close redis client", "reason", err)
		}
	}
	return session.NewRedisStore(client), closeFn, nil
}
