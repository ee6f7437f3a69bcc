package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guardian-beam/internal/domain"

	"github.com/rs/zerolog"
)

// Transactor runs a unit of work inside one database transaction. The sqlite
// DSN opens every transaction with BEGIN IMMEDIATE, so units of work never
// interleave their writes.
type Transactor struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTransactor(sqlDB *sql.DB, logger zerolog.Logger) *Transactor {
	return &Transactor{db: sqlDB, logger: logger}
}

func (t *Transactor) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		t.logger.Error().Err(err).Msg("failed to commit transaction")
		return storageError("commit transaction", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (t *Transactor) Ping(ctx context.Context) error {
	if err := t.db.PingContext(ctx); err != nil {
		return storageError("ping", err)
	}
	return nil
}

func storageError(op string, err error) error {
	return domain.NewStorageError(op, fmt.Errorf("failed to %s: %w", op, err))
}

// lookupError maps a read failure: a missing row is NotFound, anything else is
// a storage failure.
func lookupError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(op, err)
	}
	return storageError(op, err)
}
