package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para documentos
// fiscales y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.FiscalInvoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	// GetByID carga el documento con todas sus líneas.
	GetByID(ctx context.Context, id string) (*entity.FiscalInvoice, error)
	// UpdateNumber asigna el NCF y el modo de numeración del documento.
	UpdateNumber(ctx context.Context, id, documentNumber string, manual bool) error
	// SetPosted transiciona el documento a publicado, marca posted_before y
	// copia la fecha de vencimiento de secuencia del diario.
	SetPosted(ctx context.Context, id string, expiration *time.Time) error
	Delete(ctx context.Context, id string) error

	// LastDocumentNumber devuelve el último NCF emitido dentro del alcance
	// tipo de documento + compañía + grupo de dirección (moveTypes).
	// El alcance excluye a propósito el diario: la secuencia es única por
	// tipo de documento en toda la compañía. La fila se bloquea dentro de
	// la transacción en curso para garantizar asignación única.
	LastDocumentNumber(ctx context.Context, documentTypeID, companyID string, moveTypes []string) (string, error)

	// HasPostedFiscalInvoices indica si el contraparte comercial tiene al
	// menos un documento fiscal DO publicado (congela sus campos fiscales).
	HasPostedFiscalInvoices(ctx context.Context, commercialPartnerID string) (bool, error)
}
