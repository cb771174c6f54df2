package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgresRepository keeps the timestamp-key semantics on a relational
// backend: (username, key) is the primary key and a conflicting save
// overwrites the previous record, matching the file backend's
// last-write-wins behavior.
type PostgresRepository struct {
	db          *sql.DB
	granularity KeyGranularity
}

func NewPostgresRepository(db *sql.DB, g KeyGranularity) (*PostgresRepository, error) {
	return &PostgresRepository{db: db, granularity: g}, nil
}

func (r *PostgresRepository) Save(ctx context.Context, username string, entry *Entry) error {
	entry.Key = recordKey(entry.Timestamp, r.granularity)

	query :=
		`INSERT INTO entries (username, key, title, mood, tags, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (username, key) DO UPDATE
		 SET title = excluded.title, mood = excluded.mood, tags = excluded.tags, content = excluded.content
		 `

	_, err := r.db.ExecContext(ctx, query,
		username, entry.Key, entry.Title, entry.Mood,
		strings.Join(entry.Tags, ","), strings.TrimSpace(entry.Content))

	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, username string) ([]*Entry, error) {
	query :=
		`SELECT key, title, mood, tags, content FROM entries
		 WHERE username = $1
		 ORDER BY key DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		e := &Entry{}
		var tags string
		if err := rows.Scan(&e.Key, &e.Title, &e.Mood, &tags, &e.Content); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				e.Tags = append(e.Tags, tag)
			}
		}
		e.Timestamp = keyTimestamp(e.Key)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}
