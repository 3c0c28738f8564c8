package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/lmskit/internal/auth"
	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/course"
	"github.com/ferdiebergado/lmskit/internal/darklang"
	"github.com/ferdiebergado/lmskit/internal/grades"
	"github.com/ferdiebergado/lmskit/internal/middleware"
	"github.com/ferdiebergado/lmskit/internal/platform/router"
	"github.com/ferdiebergado/lmskit/internal/session"
)

type App struct {
	server          *http.Server
	opts            *config.Options
	provider        *Provider
	router          router.Router
	darklang        *darklang.Darklang
	stop            context.CancelFunc
	shutdownTimeout time.Duration
}

// New builds the server from opts and provider with every middleware and route mounted.
func New(opts *config.Options, provider *Provider) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverOpts := opts.Server

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverOpts.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverOpts.ReadTimeout.Duration,
		WriteTimeout: serverOpts.WriteTimeout.Duration,
		IdleTimeout:  serverOpts.IdleTimeout.Duration,
	}

	a := &App{
		server:          server,
		opts:            opts,
		provider:        provider,
		router:          provider.Router,
		darklang:        darklang.New(provider.Configs, provider.Preferences, opts.LMS.LanguageCode),
		stop:            stop,
		shutdownTimeout: serverOpts.ShutdownTimeout.Duration,
	}

	a.registerMiddlewares()
	a.setupRoutes()

	return a
}

// Handler returns the root handler of the server.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) registerMiddlewares() {
	metrics := middleware.NewMetrics(a.provider.Registerer)

	middlewares := []router.Middleware{
		middleware.InjectWriter,
		middleware.LogRequest,
		metrics.Middleware,
		middleware.ContextGuard,
		session.Middleware(a.provider.Sessions, a.opts.Session, a.provider.Randomizer),
		auth.Authenticate(a.provider.Signer),
		darklang.Middleware(a.darklang),
	}

	for _, mw := range middlewares {
		a.router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	darklangHandler := darklang.NewHandler(a.darklang)
	csrf := middleware.CSRFGuard(a.opts.CSRF, a.provider.Randomizer)

	mountPreviewRoutes(a.router, darklangHandler, csrf)
	mountDarkLangAdminRoutes(a.router, darklangHandler, a.provider.Validator, a.opts.Server.AllowedOrigins, a.opts.Server.MaxBodyBytes)
	mountCourseRoutes(a.router, course.NewHandler(a.opts))
	mountGradeRoutes(a.router, grades.NewHandler(a.provider.Grades), a.provider.Validator, a.opts.Server.MaxBodyBytes)
	mountMetricsRoute(a.router, a.provider.Gatherer)
}

// Start serves until ctx is done or the server fails.
func (a *App) Start(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
