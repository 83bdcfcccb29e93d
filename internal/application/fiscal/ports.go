package fiscal

import (
	"context"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/ncf"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
)

// FiscalTxRunner ejecuta una función dentro de una transacción con los
// repositorios fiscales atados a la misma conexión. La publicación y el
// borrado dependen de ella: o todos los invariantes pasan y se confirma, o
// se revierte completo.
type FiscalTxRunner interface {
	RunFiscal(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		partnerRepo repository.PartnerRepository,
		journalRepo repository.JournalRepository,
		docTypeRepo repository.DocumentTypeRepository,
	) error) error
}

// InvoicePDFGenerator puerto para la representación impresa del comprobante.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.FiscalInvoice,
		company *entity.Company,
		partner *entity.Partner,
		docType *entity.DocumentType,
		amounts ncf.FiscalAmounts,
	) ([]byte, error)
}

// ECFExporter puerto para la exportación del e-CF (XML + datos de consulta).
type ECFExporter interface {
	Build(
		invoice *entity.FiscalInvoice,
		company *entity.Company,
		partner *entity.Partner,
		docType *entity.DocumentType,
		amounts ncf.FiscalAmounts,
	) (xmlDoc []byte, securityCode string, err error)
}
