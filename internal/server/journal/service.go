package journal

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save persists one new entry for username. A zero timestamp means "now".
// The returned entry carries the record key the repository assigned.
func (s *Service) Save(ctx context.Context, username, title, content, mood string, tags []string, ts time.Time) (*Entry, error) {

	if ts.IsZero() {
		ts = time.Now()
	}

	entry := &Entry{
		Title:     title,
		Content:   content,
		Mood:      mood,
		Tags:      tags,
		Timestamp: ts,
	}

	if err := s.repo.Save(ctx, username, entry); err != nil {
		return nil, fmt.Errorf("error saving entry: %w", err)
	}

	return entry, nil
}

// List returns username's entries newest first. A user who never saved
// anything gets an empty slice.
func (s *Service) List(ctx context.Context, username string) ([]*Entry, error) {
	entries, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return entries, nil
}
