// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/metrics"
)

// withTx runs fn inside a transaction on one pooled connection. The
// transaction commits when fn returns nil and rolls back on any error or
// panic. name labels the transaction metric.
func (db *DB) withTx(ctx context.Context, name string, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return classify("begin "+name, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logging.Ctx(ctx).Error().
				Err(rbErr).
				AnErr("original_error", err).
				Str("tx", name).
				Msg("Transaction rollback failed")
		}
		metrics.RecordTransaction(name, false)
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return classify("commit "+name, err)
	}
	committed = true
	metrics.RecordTransaction(name, true)
	return nil
}

// rebind converts "?" placeholders for the active driver.
func (db *DB) rebind(query string) string {
	return db.conn.Rebind(query)
}

// execAffected runs an update or delete and returns the affected row count.
func execAffected(ctx context.Context, ext sqlx.ExecerContext, query string, args ...interface{}) (int64, error) {
	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// observe records a query metric and returns err unchanged.
func observe(operation, table string, start time.Time, err error) error {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	return err
}

// nullable turns an optional value into a bind argument: nil binds NULL.
func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
