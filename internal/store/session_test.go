package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/members-only/clubhouse/types"
)

func newSessionRepoWithMock(t *testing.T) (*SessionRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSessionRepository(db), mock, db
}

func TestSessionCreate_SerializesState(t *testing.T) {
	repo, mock, db := newSessionRepoWithMock(t)
	defer db.Close()

	expire := time.Now().Add(time.Hour)
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+session\s*\(sid,\s*sess,\s*expire\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)`).
		WithArgs("sid-1", []byte(`{"user_id":7}`), expire).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), types.Session{
		SID:    "sid-1",
		UserID: 7,
		Expire: expire,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestSessionGetBySID_FiltersExpiredInSQL(t *testing.T) {
	repo, mock, db := newSessionRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+sid,\s*sess,\s*expire\s+FROM\s+session\s+WHERE\s+sid\s*=\s*\$1\s+AND\s+expire\s*>\s*now\(\)`

	expire := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"sid", "sess", "expire"}).
		AddRow("sid-1", []byte(`{"user_id":7}`), expire)
	mock.ExpectQuery(q).WithArgs("sid-1").WillReturnRows(rows)

	got, err := repo.GetBySID(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("GetBySID error: %v", err)
	}
	if got.UserID != 7 || got.SID != "sid-1" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionGetBySID_Missing(t *testing.T) {
	repo, mock, db := newSessionRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+session`).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySID(context.Background(), "gone")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionGetBySID_UndecodableState(t *testing.T) {
	repo, mock, db := newSessionRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"sid", "sess", "expire"}).
		AddRow("sid-1", []byte(`not json`), time.Now().Add(time.Hour))
	mock.ExpectQuery(`FROM\s+session`).WithArgs("sid-1").WillReturnRows(rows)

	_, err := repo.GetBySID(context.Background(), "sid-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for undecodable state, got %v", err)
	}
}

func TestSessionDelete(t *testing.T) {
	repo, mock, db := newSessionRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+session\s+WHERE\s+sid\s*=\s*\$1`).
		WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "sid-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestSessionDeleteExpired_ReportsCount(t *testing.T) {
	repo, mock, db := newSessionRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+session\s+WHERE\s+expire\s*<=\s*now\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	pruned, err := repo.DeleteExpired(context.Background())
	if err != nil {
		t.Fatalf("DeleteExpired error: %v", err)
	}
	if pruned != 3 {
		t.Fatalf("expected 3 pruned sessions, got %d", pruned)
	}
}
