package journal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mkravets/falljournal/internal/filex"
	"github.com/mkravets/falljournal/internal/logging"
)

// FSRepository stores one file per entry under <root>/<username>/, named
// <key>-entry.txt. The mutex serializes the save and list-then-parse cycles
// within this process; cross-process writers are not guarded.
type FSRepository struct {
	root        string
	granularity KeyGranularity
	logger      logging.Logger
	mu          sync.Mutex
}

func NewFSRepository(root string, g KeyGranularity, l logging.Logger) *FSRepository {
	return &FSRepository{
		root:        root,
		granularity: g,
		logger:      l.With("module", "journal_fs"),
	}
}

func (r *FSRepository) Save(ctx context.Context, username string, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, err := filex.EnsureSubDir(r.root, username)
	if err != nil {
		return err
	}

	entry.Key = recordKey(entry.Timestamp, r.granularity)
	path := filepath.Join(dir, entry.Key+recordSuffix)

	if err := os.WriteFile(path, encodeRecord(entry), 0o660); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *FSRepository) ListByUser(ctx context.Context, username string) ([]*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Join(r.root, username)

	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*Entry{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f.Name(), recordSuffix) {
			names = append(names, f.Name())
		}
	}

	// keys are zero-padded timestamps, so reverse-lexicographic is newest first
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	entries := make([]*Entry, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			r.logger.Warn(ctx, "skipping unreadable entry record", "user", username, "file", name, "error", err)
			continue
		}
		entries = append(entries, parseRecord(strings.TrimSuffix(name, recordSuffix), data))
	}

	return entries, nil
}
