package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-api/internal/application/billing"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.BillingTxRunner and usecase.CatalogTxRunner.
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run abre la transacción, ejecuta fn y hace Commit; ante cualquier error el Rollback diferido libera la tx.
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

// RunBilling ejecuta fn con el repositorio de facturas atado a la tx.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(billRepo repository.BillRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewBillRepository(tx))
	})
}

// RunCatalog ejecuta fn con los repositorios de artículos y facturas atados a la misma tx.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	billRepo repository.BillRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx), NewBillRepository(tx))
	})
}
