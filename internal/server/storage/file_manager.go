package storage

import (
	"github.com/mkravets/falljournal/internal/filex"
	"github.com/mkravets/falljournal/internal/logging"
	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/themes"
	"github.com/mkravets/falljournal/internal/server/users"
)

// FileRepositoryManager is the default backend: a JSON credential file plus
// one directory per user for entry records and the theme document.
type FileRepositoryManager struct {
	users   users.Repository
	entries journal.Repository
	themes  themes.Repository
}

func NewFileRepositoryManager(cfg *config.Config, logger logging.Logger) (*FileRepositoryManager, error) {

	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}

	granularity := journal.ParseKeyGranularity(cfg.KeyGranularity)

	return &FileRepositoryManager{
		users:   users.NewJSONRepository(cfg.UsersFile),
		entries: journal.NewFSRepository(cfg.DataDir, granularity, logger),
		themes:  themes.NewFSRepository(cfg.DataDir),
	}, nil
}

func (m *FileRepositoryManager) Users() users.Repository     { return m.users }
func (m *FileRepositoryManager) Entries() journal.Repository { return m.entries }
func (m *FileRepositoryManager) Themes() themes.Repository   { return m.themes }
func (m *FileRepositoryManager) Close() error                { return nil }
