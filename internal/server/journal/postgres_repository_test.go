package journal

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo, err := NewPostgresRepository(db, KeySecond)
	if err != nil {
		t.Fatalf("NewPostgresRepository error: %v", err)
	}
	return repo, mock, db
}

const upsertQuery = `(?s)^INSERT\s+INTO\s+entries\s*\(username,\s*key,\s*title,\s*mood,\s*tags,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*ON\s+CONFLICT\s*\(username,\s*key\)\s*DO\s+UPDATE.*$`
const listQuery = `(?s)^SELECT\s+key,\s*title,\s*mood,\s*tags,\s*content\s+FROM\s+entries\s+WHERE\s+username\s*=\s*\$1\s+ORDER\s+BY\s+key\s+DESC\s*$`

func TestPostgresSave_UpsertsByKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertQuery).
		WithArgs("alice", "2025-09-14-080509", "My Title", "😌 Calm", "autumn,coffee", "Hello world").
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &Entry{
		Title:     "My Title",
		Mood:      "😌 Calm",
		Tags:      []string{"autumn", "coffee"},
		Content:   "  Hello world  ",
		Timestamp: time.Date(2025, 9, 14, 8, 5, 9, 0, time.UTC),
	}
	if err := repo.Save(context.Background(), "alice", entry); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if entry.Key != "2025-09-14-080509" {
		t.Fatalf("unexpected key: %s", entry.Key)
	}
}

func TestPostgresSave_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertQuery).
		WillReturnError(errors.New("db down"))

	entry := &Entry{Title: "t", Content: "c", Timestamp: time.Now()}
	if err := repo.Save(context.Background(), "alice", entry); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "title", "mood", "tags", "content"}).
		AddRow("2025-09-14-100000", "newest", "", "", "c3").
		AddRow("2025-09-13-100000", "middle", "😌 Calm", "autumn,walks", "c2").
		AddRow("2025-09-12-100000", "oldest", "", "", "c1")
	mock.ExpectQuery(listQuery).
		WithArgs("alice").
		WillReturnRows(rows)

	entries, err := repo.ListByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Title != "newest" || entries[2].Title != "oldest" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if len(entries[1].Tags) != 2 || entries[1].Tags[0] != "autumn" {
		t.Fatalf("unexpected tags: %+v", entries[1].Tags)
	}
	if entries[0].Timestamp.IsZero() {
		t.Fatal("timestamp should be recovered from the key")
	}
}

func TestPostgresListByUser_NoRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"key", "title", "mood", "tags", "content"}))

	entries, err := repo.ListByUser(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %d", len(entries))
	}
}
