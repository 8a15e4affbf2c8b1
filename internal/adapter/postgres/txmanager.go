package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/family-planner/internal/domain"
)

// ErrNoTransaction is returned by LockFamily when called outside RunInTx.
var ErrNoTransaction = errors.New("no transaction in context")

// beginner is satisfied by *pgxpool.Pool and pgxmock pools.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager manages database transactions using the context pattern.
// Nested RunInTx calls are NOT supported: calling RunInTx inside a RunInTx
// callback will create a second independent transaction, which is a bug.
type TxManager struct {
	db beginner
}

// NewTxManager creates a new TxManager.
func NewTxManager(db beginner) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default).
// On success: commits.
// On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	txCtx := withTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// LockFamily takes a transaction-scoped advisory lock keyed by the family id.
// Concurrent transactions locking the same family queue behind each other
// until commit or rollback; different families never block.
func (m *TxManager) LockFamily(ctx context.Context, familyID domain.FamilyID) error {
	tx, ok := txFromCtx(ctx)
	if !ok {
		return fmt.Errorf("lock family %s: %w", familyID, ErrNoTransaction)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, familyID.String()); err != nil {
		return fmt.Errorf("lock family %s: %w", familyID, err)
	}
	return nil
}
