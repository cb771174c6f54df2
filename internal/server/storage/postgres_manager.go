package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/migrations"
	"github.com/mkravets/falljournal/internal/server/themes"
	"github.com/mkravets/falljournal/internal/server/users"
)

type PostgresRepositoryManager struct {
	db      *sql.DB
	users   users.Repository
	entries journal.Repository
	themes  themes.Repository
}

func NewPostgresRepositoryManager(ctx context.Context, cfg *config.Config) (*PostgresRepositoryManager, error) {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	entryRepo, err := journal.NewPostgresRepository(db, journal.ParseKeyGranularity(cfg.KeyGranularity))
	if err != nil {
		return nil, fmt.Errorf("entry repo creation error: %w", err)
	}

	themeRepo, err := themes.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("theme repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:      db,
		users:   userRepo,
		entries: entryRepo,
		themes:  themeRepo,
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Users() users.Repository     { return m.users }
func (m *PostgresRepositoryManager) Entries() journal.Repository { return m.entries }
func (m *PostgresRepositoryManager) Themes() themes.Repository   { return m.themes }
func (m *PostgresRepositoryManager) Close() error                { return m.db.Close() }
