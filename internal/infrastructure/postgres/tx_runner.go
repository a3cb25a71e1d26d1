package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// RunInTx ejecuta fn dentro de una transacción abierta sobre q y hace Commit o Rollback.
// Si q ya es una transacción, pgx abre un savepoint.
func RunInTx(ctx context.Context, q Querier, fn func(tx pgx.Tx) error) error {
	tx, err := q.Begin(ctx)
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
