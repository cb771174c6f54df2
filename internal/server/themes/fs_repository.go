package themes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mkravets/falljournal/internal/filex"
	"github.com/mkravets/falljournal/internal/session"
)

// themeFileName is the theme document inside the user's namespace. The entry
// store ignores it because it lacks the entry record suffix.
const themeFileName = "theme.json"

type FSRepository struct {
	root string
}

func NewFSRepository(root string) *FSRepository {
	return &FSRepository{root: root}
}

func (r *FSRepository) Get(ctx context.Context, username string) (session.Theme, error) {
	path := filepath.Join(r.root, username, themeFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return session.DefaultTheme(), nil
		}
		return session.Theme{}, fmt.Errorf("read %s: %w", path, err)
	}

	var theme session.Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return session.Theme{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return theme, nil
}

func (r *FSRepository) Put(ctx context.Context, username string, theme session.Theme) error {
	dir, err := filex.EnsureSubDir(r.root, username)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(theme, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(dir, themeFileName)
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
