package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Every economy operation is an all-or-nothing read-modify-write on a
// single user's rows, serialized by locking the user row. Postgres can
// still abort a transaction with a serialization or deadlock failure;
// those are retried here so callers never see them.

const txMaxAttempts = 3

// inTx runs fn inside a database transaction, committing on nil error.
// Serialization and deadlock aborts are retried up to txMaxAttempts.
func inTx(ctx context.Context, db *pgxpool.Pool, fn func(pgx.Tx) error) error {
	var err error
	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		err = runInTx(ctx, db, fn)
		if !retryableTxError(err) {
			return err
		}
	}
	return err
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
