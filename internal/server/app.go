// Package server wires the configured store, services and HTTP API together
// and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophfav/internal/cryptox"
	"github.com/dmitrijs2005/gophfav/internal/logging"
	"github.com/dmitrijs2005/gophfav/internal/server/auth"
	"github.com/dmitrijs2005/gophfav/internal/server/config"
	"github.com/dmitrijs2005/gophfav/internal/server/httpapi"
	"github.com/dmitrijs2005/gophfav/internal/server/metrics"
	"github.com/dmitrijs2005/gophfav/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophfav/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	server  *httpapi.Server
}

// NewApp validates cfg, connects the configured store and migrates it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	m, err := repomanager.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, cfg, logger, m, cryptox.NewHasher(cryptox.DefaultArgon2Params))
	if err != nil {
		_ = m.Close(ctx)
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger, m repomanager.RepositoryManager, hasher services.PasswordHasher) (*App, error) {
	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us, err := services.NewUserService(m.Users(), hasher, cfg, logger)
	if err != nil {
		return nil, err
	}
	fs := services.NewFavouritesService(m.Users(), cfg.FavouritesLimit, logger)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, us, fs, auth.NewGate(cfg.SecretKey), metrics.New())

	return &App{config: cfg, logger: logger, manager: m, server: srv}, nil
}

// initSignalHandler cancels the run on SIGINT, SIGTERM or SIGQUIT. The
// returned func detaches the handler.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) func() {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()

	return func() { signal.Stop(sigs) }
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	stop := app.initSignalHandler(ctx, cancelFunc)
	defer stop()

	runErr := app.server.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server failed", "error", runErr)
	}

	if err := app.manager.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "closing store failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
