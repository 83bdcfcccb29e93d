package fiscal

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fiscal-do-api/internal/domain"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
	"github.com/jhoicas/fiscal-do-api/pkg/logger"
)

// PostUseCase publica un documento fiscal aplicando las guardas dominicanas.
// Todo ocurre en una sola transacción: o todos los invariantes pasan y el
// documento queda publicado, o nada se aplica.
type PostUseCase struct {
	txRunner FiscalTxRunner
	// vatThreshold umbral de monto sin impuestos a partir del cual el
	// RNC/cédula es obligatorio para no contribuyentes.
	vatThreshold decimal.Decimal
	log          *logger.Logger
}

// NewPostUseCase construye el caso de uso. vatThreshold cero aplica el
// umbral reglamentario de la DGII.
func NewPostUseCase(txRunner FiscalTxRunner, vatThreshold decimal.Decimal, log *logger.Logger) *PostUseCase {
	if vatThreshold.IsZero() {
		vatThreshold = decimal.NewFromInt(dgii.VATMandatoryThreshold)
	}
	return &PostUseCase{txRunner: txRunner, vatThreshold: vatThreshold, log: log}
}

// Post valida y publica el documento. Guardas para documentos fiscales DO:
//
//  1. Contraparte no contribuyente sin RNC/cédula con base >= umbral -> rechazo.
//  2. Contraparte sin tipo de contribuyente -> rechazo.
//  3. Al publicar se copia la fecha de vencimiento de secuencia configurada
//     en el diario para el tipo de documento elegido.
func (uc *PostUseCase) Post(ctx context.Context, companyID, invoiceID string) (*entity.FiscalInvoice, error) {
	var posted *entity.FiscalInvoice

	err := uc.txRunner.RunFiscal(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		partnerRepo repository.PartnerRepository,
		journalRepo repository.JournalRepository,
		docTypeRepo repository.DocumentTypeRepository,
	) error {
		inv, err := invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil || inv.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if inv.State != entity.StateDraft {
			return domain.ErrConflict
		}

		if !isFiscalDocument(inv) {
			// Fuera del régimen DO: publica sin guardas fiscales.
			inv.State = entity.StatePosted
			inv.PostedBefore = true
			posted = inv
			return invoiceRepo.SetPosted(ctx, inv.ID, nil)
		}

		partner, err := partnerRepo.GetByID(ctx, inv.PartnerID)
		if err != nil || partner == nil {
			return domain.ErrNotFound
		}
		commercial, err := partnerRepo.GetCommercial(ctx, inv.PartnerID)
		if err != nil || commercial == nil {
			return domain.ErrNotFound
		}

		hasVAT := strings.TrimSpace(partner.VAT) != ""
		if !hasVAT &&
			inv.AmountUntaxedSigned.GreaterThanOrEqual(uc.vatThreshold) &&
			commercial.TaxPayerType == dgii.TaxPayerTypeNonPayer {
			return domain.ErrVATRequired
		}
		if partner.TaxPayerType == "" {
			return domain.ErrTaxPayerTypeRequired
		}

		// Sin NCF asignado aún: auto-secuenciar dentro de esta misma
		// transacción (los tipos de numeración manual ya deben traerlo).
		if inv.DocumentNumber == "" {
			docType, err := docTypeRepo.GetByID(ctx, inv.DocumentTypeID)
			if err != nil {
				return err
			}
			if docType == nil {
				return domain.ErrNotFound
			}
			if err := assignNumber(ctx, invoiceRepo, inv, docType, ""); err != nil {
				return err
			}
		}

		journal, err := journalRepo.GetByID(ctx, inv.JournalID)
		if err != nil || journal == nil {
			return domain.ErrNotFound
		}
		expiration := journal.ExpirationFor(inv.DocumentTypeID)

		inv.State = entity.StatePosted
		inv.PostedBefore = true
		inv.NCFExpirationDate = expiration
		posted = inv
		return invoiceRepo.SetPosted(ctx, inv.ID, expiration)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("document_number", posted.DocumentNumber).
		Msg("documento fiscal publicado")
	return posted, nil
}

// isFiscalDocument indica si el documento entra al régimen fiscal DO:
// país DO, diario con documentos legales y tipo de documento elegido.
func isFiscalDocument(inv *entity.FiscalInvoice) bool {
	return inv.CountryCode == dgii.CountryCode && inv.UseDocuments && inv.DocumentTypeID != ""
}
