package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/pkg/logging"
	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/platform/db"
)

const (
	envFile    = ".env"
	configFile = "config.json"
	envKey     = "KEY"
)

// Run loads the configuration, connects the backends and serves until ctx is done.
func Run(ctx context.Context) error {
	slog.Info("Initializing...")

	if os.Getenv("ENV") != "production" {
		if err := env.Load(envFile); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	opts, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logging.SetupLogger(logging.Options{
		Service: logging.ServiceLMS,
		Env:     opts.App.Env,
		Level:   opts.App.LogLevel,
	}, os.Stdout)

	if err := config.ValidateLMS(opts); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	securityKey, ok := os.LookupEnv(envKey)
	if !ok {
		return fmt.Errorf(message.EnvErrFmt, envKey)
	}

	conn, err := db.NewConnection(ctx, opts.DB)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.ApplyEmbedded(ctx, conn); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	provider, cleanUp, err := newProvider(ctx, opts, securityKey, conn)
	if err != nil {
		return err
	}
	defer cleanUp()

	api := New(opts, provider)
	if err := api.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}
