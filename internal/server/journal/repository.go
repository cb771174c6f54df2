// Package journal implements the entry store: appending dated records to a
// per-user namespace and reconstructing the ordered entry list on demand.
package journal

import (
	"context"
)

// Repository persists journal entries. Save writes one record into the user's
// namespace, creating the namespace if needed; ListByUser returns the user's
// entries newest first, and an empty slice (not an error) when the namespace
// does not exist yet.
type Repository interface {
	Save(ctx context.Context, username string, entry *Entry) error
	ListByUser(ctx context.Context, username string) ([]*Entry, error)
}
