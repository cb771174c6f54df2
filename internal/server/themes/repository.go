// Package themes persists each user's journal customization settings.
package themes

import (
	"context"

	"github.com/mkravets/falljournal/internal/session"
)

// Repository stores one theme document per user. Get returns the default
// theme (not an error) for users who never customized anything.
type Repository interface {
	Get(ctx context.Context, username string) (session.Theme, error)
	Put(ctx context.Context, username string, theme session.Theme) error
}
