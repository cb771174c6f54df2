package themes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkravets/falljournal/internal/session"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Get(ctx context.Context, username string) (session.Theme, error) {
	query :=
		`SELECT theme FROM themes
		 WHERE username = $1
		 `

	var data []byte
	err := r.db.QueryRowContext(ctx, query, username).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.DefaultTheme(), nil
		}
		return session.Theme{}, fmt.Errorf("error performing sql request: %w", err)
	}

	var theme session.Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return session.Theme{}, fmt.Errorf("error parsing theme document: %w", err)
	}
	return theme, nil
}

func (r *PostgresRepository) Put(ctx context.Context, username string, theme session.Theme) error {
	data, err := json.Marshal(theme)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO themes (username, theme)
		 VALUES ($1, $2)
		 ON CONFLICT (username) DO UPDATE SET theme = excluded.theme
		 `

	if _, err := r.db.ExecContext(ctx, query, username, data); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}
