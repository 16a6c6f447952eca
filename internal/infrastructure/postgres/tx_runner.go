package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/depcatalog-api/internal/application/budget"
	"github.com/jhoicas/depcatalog-api/internal/domain/repository"
)

// Ensure TxRunner implements budget.BudgetTxRunner.
var _ budget.BudgetTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBudget inicia una transacción, ejecuta fn con el repo de presupuesto atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunBudget(ctx context.Context, fn func(repo repository.LockingBudgetRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewBudgetRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
