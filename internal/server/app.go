// Package server initializes and runs the authentication server: it wires the
// credential store, password hasher, token service and HTTP endpoint together
// and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/authkeep/authkeep/internal/httpserver"
	"github.com/authkeep/authkeep/internal/logging"
	"github.com/authkeep/authkeep/internal/server/config"
	"github.com/authkeep/authkeep/internal/server/creds"
	"github.com/authkeep/authkeep/internal/server/httpapi"
	"github.com/authkeep/authkeep/internal/server/passhash"
	"github.com/authkeep/authkeep/internal/server/token"
	"github.com/authkeep/authkeep/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	users  *users.Service
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// The store lives as long as the process; everything takes it by handle.
	repo := creds.NewMemoryRepository()
	hasher := passhash.New(passhash.Params{
		TimeCost:    cfg.HashTimeCost,
		MemoryKiB:   cfg.HashMemoryKiB,
		Parallelism: cfg.HashParallelism,
		KeyLength:   cfg.HashKeyLength,
	})
	tokens := token.NewService([]byte(cfg.SecretKey))

	us, err := users.NewService(repo, hasher, tokens, cfg)
	if err != nil {
		return nil, fmt.Errorf("auth service init: %w", err)
	}

	return &App{config: cfg, logger: logger, users: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")
	app.initSignalHandler(cancelFunc)

	api := httpapi.New(app.users, app.logger)
	return httpserver.Serve(ctx, app.config.EndpointAddr, api.Handler(), app.logger)
}
