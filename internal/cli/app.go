// Package cli is a small interactive front end for the journal stores. It
// talks to the same service layer the HTTP endpoint uses, over the file
// backend by default.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mkravets/falljournal/internal/logging"
	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/storage"
	"github.com/mkravets/falljournal/internal/server/users"
)

type App struct {
	config       *config.Config
	manager      storage.RepositoryManager
	userService  *users.Service
	entryService *journal.Service
	userName     string
	reader       *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(slogger)

	manager, err := storage.NewRepositoryManager(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return &App{
		config:       cfg,
		manager:      manager,
		userService:  users.NewService(manager.Users(), cfg),
		entryService: journal.NewService(manager.Entries()),
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) Run(ctx context.Context) {
	defer a.manager.Close()

	printlnFn("Welcome to the journal CLI (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
