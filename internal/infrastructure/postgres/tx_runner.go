package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fiscal-do-api/internal/application/fiscal"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
)

// Ensure TxRunner implements fiscal.FiscalTxRunner.
var _ fiscal.FiscalTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunFiscal inicia una transacción, ejecuta fn con los repositorios fiscales
// atados a la tx y hace Commit o Rollback. La asignación de NCF depende de
// esto: el SELECT FOR UPDATE del último número solo serializa dentro de la
// misma transacción que luego inserta el siguiente.
func (r *TxRunner) RunFiscal(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	partnerRepo repository.PartnerRepository,
	journalRepo repository.JournalRepository,
	docTypeRepo repository.DocumentTypeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	partnerRepo := NewPartnerRepository(tx)
	journalRepo := NewJournalRepository(tx)
	docTypeRepo := NewDocumentTypeRepository(tx)

	if err := fn(invoiceRepo, partnerRepo, journalRepo, docTypeRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
