package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/members-only/clubhouse/types"
)

func newMessageRepoWithMock(t *testing.T) (*MessageRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewMessageRepository(db), mock, db
}

func TestMessageCreate_AssignsIDAndTimestamp(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+messages\s*\(user_id,\s*title,\s*message,\s*timestamp\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+message_id`

	rows := sqlmock.NewRows([]string{"message_id"}).AddRow(5)
	mock.ExpectQuery(q).
		WithArgs(7, "hello", "first post", sqlmock.AnyArg()).
		WillReturnRows(rows)

	before := time.Now()
	got, err := repo.Create(context.Background(), types.Message{
		UserID: 7,
		Title:  "hello",
		Body:   "first post",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 5 {
		t.Fatalf("expected assigned id 5, got %d", got.ID)
	}
	if got.Timestamp.Before(before) {
		t.Fatalf("expected server-assigned timestamp, got %v", got.Timestamp)
	}
}

func TestMessageListWithAuthors_OrderedOldestFirst(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+m\.message_id,.*FROM\s+messages\s+m\s+JOIN\s+userdetails\s+u\s+ON\s+m\.user_id\s*=\s*u\.user_id\s+ORDER\s+BY\s+m\.timestamp\s+ASC,\s*m\.message_id\s+ASC`

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"message_id", "user_id", "title", "message", "timestamp", "first_name", "last_name"}).
		AddRow(1, 7, "hello", "first", ts, "Ann", "Lee").
		AddRow(2, 8, "hi", "second", ts.Add(time.Minute), "Bob", "Roy")
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.ListWithAuthors(context.Background())
	if err != nil {
		t.Fatalf("ListWithAuthors error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].AuthorFirstName != "Ann" || got[0].AuthorLastName != "Lee" {
		t.Fatalf("unexpected author on first message: %+v", got[0])
	}
	if got[1].Title != "hi" {
		t.Fatalf("unexpected second message: %+v", got[1])
	}
}

func TestMessageListWithAuthors_Empty(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"message_id", "user_id", "title", "message", "timestamp", "first_name", "last_name"})
	mock.ExpectQuery(`FROM\s+messages`).WillReturnRows(rows)

	got, err := repo.ListWithAuthors(context.Background())
	if err != nil {
		t.Fatalf("ListWithAuthors error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no messages, got %d", len(got))
	}
}

func TestMessageDelete_AbsentIDIsNoop(t *testing.T) {
	repo, mock, db := newMessageRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+messages\s+WHERE\s+message_id\s*=\s*\$1`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 99); err != nil {
		t.Fatalf("Delete of absent id should be a silent no-op, got %v", err)
	}
}
