// Package storage wires the configured backend (file, postgres or S3) into
// one repository manager handed to the services.
package storage

import (
	"context"

	"github.com/mkravets/falljournal/internal/logging"
	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/themes"
	"github.com/mkravets/falljournal/internal/server/users"
)

// RepositoryManager provides the backend-specific repositories behind one
// interface so the rest of the server never knows which substrate it runs on.
type RepositoryManager interface {
	Users() users.Repository
	Entries() journal.Repository
	Themes() themes.Repository
	Close() error
}

// NewRepositoryManager builds the manager the configuration selects.
func NewRepositoryManager(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	switch cfg.Backend() {
	case config.BackendPostgres:
		return NewPostgresRepositoryManager(ctx, cfg)
	case config.BackendS3:
		return NewS3RepositoryManager(ctx, cfg, logger)
	default:
		return NewFileRepositoryManager(cfg, logger)
	}
}
