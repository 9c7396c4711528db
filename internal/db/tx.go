package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunInTx starts a transaction with the given options and runs fn inside it.
// The transaction commits when fn returns nil and rolls back otherwise.
func RunInTx(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// RunSerializable runs fn in a SERIALIZABLE transaction. Capacity admission
// (overlap read + booking write) must go through this so two concurrent
// requests cannot jointly overbook the same equipment.
func RunSerializable(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return RunInTx(ctx, pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}
