// Package server initializes and runs the journal application server.
// It selects the configured storage backend, wires the services into the HTTP
// endpoint and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mkravets/falljournal/internal/logging"
	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/httpapi"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/storage"
	"github.com/mkravets/falljournal/internal/server/users"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager storage.RepositoryManager
	server  *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	manager, err := storage.NewRepositoryManager(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := users.NewService(manager.Users(), cfg)
	es := journal.NewService(manager.Entries())

	srv := httpapi.NewServer(cfg, us, es, manager.Themes(), logger)

	return &App{config: cfg, logger: logger, manager: manager, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.Backend())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}
}
