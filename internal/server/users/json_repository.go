package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mkravets/falljournal/internal/common"
	"github.com/mkravets/falljournal/internal/filex"
)

// JSONRepository stores the full username -> password-hash map in a single
// human-readable JSON file, rewritten wholesale on every registration.
// A store-level mutex serializes the read-modify-write cycle; cross-process
// writers are not guarded.
type JSONRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

// load reads the whole credential map. A missing file is an empty store.
func (r *JSONRepository) load() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return m, nil
}

// save rewrites the whole credential map.
func (r *JSONRepository) save(m map[string]string) error {
	if err := filex.EnsureDir(filepath.Dir(r.path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

func (r *JSONRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.load()
	if err != nil {
		return nil, err
	}

	if _, ok := m[user.Name]; ok {
		return nil, common.ErrorAlreadyExists
	}

	m[user.Name] = user.PasswordHash
	if err := r.save(m); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *JSONRepository) GetByName(ctx context.Context, name string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.load()
	if err != nil {
		return nil, err
	}

	hash, ok := m[name]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return &User{Name: name, PasswordHash: hash}, nil
}
