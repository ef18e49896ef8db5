package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

// newMockDB returns a sqlmock DB whose expectations are checked on cleanup.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return db, mock
}

type argumentFunc func(v driver.Value) bool

func (f argumentFunc) Match(v driver.Value) bool { return f(v) }

func isUTCTime() argumentFunc {
	return func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Location() == time.UTC
	}
}
