package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides transaction handling shared by the pgx repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// begin starts a read-committed transaction.
func (r *BaseRepository) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *BaseRepository) commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewPersistenceError("failed to commit transaction", err)
	}
	return nil
}

// rollback is a no-op once tx has been committed.
func (r *BaseRepository) rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewPersistenceError("failed to rollback transaction", err)
	}
	return nil
}

// runInTx runs fn inside one transaction and commits only when fn succeeds. The rollback
// runs detached from ctx so that an expired request still releases its row locks.
func (r *BaseRepository) runInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = r.rollback(context.WithoutCancel(ctx), tx)
		return err
	}
	return r.commit(ctx, tx)
}
