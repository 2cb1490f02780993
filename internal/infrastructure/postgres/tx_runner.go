package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// TxRunner ejecuta mutaciones de facturas dentro de una transacción: líneas y
// cabecera se confirman juntas o no se confirma nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner crea el ejecutor transaccional sobre el pool dado.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre una transacción, entrega a fn un repositorio de facturas atado a
// ella y confirma si fn no falla. Ante error o panic hace rollback.
func (t *TxRunner) Run(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("abrir transacción: %w", err)
	}
	defer tx.Rollback(ctx) // no-op si ya hubo commit

	if err := fn(NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}
