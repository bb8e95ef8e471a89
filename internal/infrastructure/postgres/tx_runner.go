package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appmovement "github.com/el-lector/libreria-api/internal/application/movement"
	"github.com/el-lector/libreria-api/internal/domain/repository"
)

// Ensure TxRunner implements movement.TxRunner.
var _ appmovement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un repositorio de traslados atado
// a la tx y hace Commit o Rollback. Es la frontera de atomicidad del ledger:
// cabecera + líneas en Create, estado + auditoría en las transiciones.
func (r *TxRunner) Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
