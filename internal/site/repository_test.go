// internal/site/repository_test.go
//
// Unit-tests for site helpers using sqlmock.
//
// Run: go test ./internal/site -v

package site

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var cols = []string{"id", "host", "title", "suspended_at", "deleted_at", "created_at", "updated_at"}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestByHost(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, host, title, suspended_at, deleted_at, created_at, updated_at FROM site WHERE host = ?`,
	)).
		WithArgs("blog.example.com").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(7), "blog.example.com", "Blog", nil, nil, now, now))

	rec, err := ByHost(context.Background(), db, "blog.example.com")
	if err != nil {
		t.Fatalf("ByHost error: %v", err)
	}
	if rec.ID != 7 || rec.Title != "Blog" || rec.SuspendedAt != nil {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestByHostNoRows(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`FROM site WHERE host = \?`).
		WithArgs("nope.example.com").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err := ByHost(context.Background(), db, "nope.example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestAllActive(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM site WHERE suspended_at IS NULL AND deleted_at IS NULL`)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "a.example.com", "A", nil, nil, now, now).
			AddRow(int64(2), "b.example.com", "B", nil, nil, now, now))

	got, err := AllActive(context.Background(), db)
	if err != nil {
		t.Fatalf("AllActive error: %v", err)
	}
	if len(got) != 2 || got[1].Host != "b.example.com" {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestConfigBySite(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT `key`, value FROM site_config WHERE site_id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("base_url", "https://blog.example.com/base").
			AddRow("url_style", "clean"))

	cfg, err := ConfigBySite(context.Background(), db, 7)
	if err != nil {
		t.Fatalf("ConfigBySite error: %v", err)
	}
	if cfg["base_url"] != "https://blog.example.com/base" || cfg["url_style"] != "clean" {
		t.Fatalf("unexpected map: %#v", cfg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
