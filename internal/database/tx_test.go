// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/trickortreat/internal/metrics"
)

// setupMockDB returns a DB backed by go-sqlmock speaking the postgres
// placeholder dialect.
func setupMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() {
		closeQuietly(conn)
	})
	return NewWithConn(conn, DriverPostgres), mock
}

func TestWithTx_RollbackOnMissingUser(t *testing.T) {
	db, mock := setupMockDB(t)
	rollbacks := metrics.DBTransactionsTotal.WithLabelValues("delete_user", "rollback")
	before := testutil.ToFloat64(rollbacks)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT treatproviderid FROM users WHERE userid = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"treatproviderid"}))
	mock.ExpectRollback()

	_, err := db.DeleteUser(context.Background(), 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
	if got := testutil.ToFloat64(rollbacks) - before; got != 1 {
		t.Errorf("expected one rollback recorded, got %v", got)
	}
}

func TestWithTx_DuplicateBookmarkRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM treat_providers WHERE treatproviderid = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO saved_houses \(userid, treatproviderid\) VALUES \(\$1, \$2\)`).
		WithArgs(int64(1), int64(5)).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	if err := db.SaveHouse(context.Background(), 1, 5); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithTx_NothingDeletedRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM saved_houses WHERE userid = \$1 AND treatproviderid = \$2`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := db.DeleteSavedHouse(context.Background(), 1, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithTx_CommitConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	commits := metrics.DBTransactionsTotal.WithLabelValues("delete_saved_house", "commit")
	before := testutil.ToFloat64(commits)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM saved_houses`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("pq: could not serialize access due to concurrent update"))

	if err := db.DeleteSavedHouse(context.Background(), 1, 2); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
	if got := testutil.ToFloat64(commits) - before; got != 0 {
		t.Errorf("failed commit must not count as committed, got %v", got)
	}
}

func TestWithTx_BeginFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("driver: bad connection"))

	if err := db.SaveHouse(context.Background(), 1, 2); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
