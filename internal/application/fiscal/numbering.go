package fiscal

import (
	"context"
	"strings"

	"github.com/jhoicas/fiscal-do-api/internal/domain"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/ncf"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
	"github.com/jhoicas/fiscal-do-api/pkg/logger"
)

// NumberingUseCase asigna el NCF de un documento: auto-secuenciado a partir
// del último emitido en el alcance, o normalización del número digitado
// cuando el tipo exige numeración manual.
//
// Para documentos DO no se aplica ninguna restricción cronológica de
// secuencia: la continuidad por fecha del anfitrión queda deshabilitada y el
// alcance de unicidad es tipo de documento + compañía + grupo de dirección.
type NumberingUseCase struct {
	txRunner FiscalTxRunner
	log      *logger.Logger
}

// NewNumberingUseCase construye el caso de uso.
func NewNumberingUseCase(txRunner FiscalTxRunner, log *logger.Logger) *NumberingUseCase {
	return &NumberingUseCase{txRunner: txRunner, log: log}
}

// AssignNumber fija el tipo de documento y el NCF de una factura en
// borrador. proposed solo se usa en numeración manual. La búsqueda del
// último número y la escritura ocurren en la misma transacción: el
// repositorio bloquea la última fila del alcance, de modo que dos documentos
// concurrentes del mismo alcance nunca reciben el mismo número.
func (uc *NumberingUseCase) AssignNumber(ctx context.Context, companyID, invoiceID, documentTypeID, proposed string) (*entity.FiscalInvoice, error) {
	var out *entity.FiscalInvoice

	err := uc.txRunner.RunFiscal(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PartnerRepository,
		_ repository.JournalRepository,
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
		docType, err := docTypeRepo.GetByID(ctx, documentTypeID)
		if err != nil {
			return err
		}
		if docType == nil {
			return domain.ErrNotFound
		}
		inv.DocumentTypeID = docType.ID

		if err := assignNumber(ctx, invoiceRepo, inv, docType, proposed); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("document_number", out.DocumentNumber).
		Bool("manual", out.ManualNumber).
		Msg("NCF asignado")
	return out, nil
}

// assignNumber calcula y persiste el NCF de la factura con los repositorios
// de la transacción del caller.
func assignNumber(
	ctx context.Context,
	invoiceRepo repository.InvoiceRepository,
	inv *entity.FiscalInvoice,
	docType *entity.DocumentType,
	proposed string,
) error {
	manual, err := requiresManualNumber(ctx, invoiceRepo, inv, docType)
	if err != nil {
		return err
	}

	var number string
	if manual {
		number, err = normalizeManualNumber(proposed, docType)
		if err != nil {
			return err
		}
	} else {
		moveTypes := directionGroup(docType)
		last, err := invoiceRepo.LastDocumentNumber(ctx, docType.ID, inv.CompanyID, moveTypes)
		if err != nil {
			return err
		}
		number = ncf.NextNumber(last, docType)
	}

	if err := invoiceRepo.UpdateNumber(ctx, inv.ID, number, manual); err != nil {
		return err
	}
	inv.DocumentNumber = number
	inv.ManualNumber = manual
	return nil
}

// requiresManualNumber decide si el NCF lo digita el usuario. Una reversión
// hereda el modo de numeración del documento revertido; fuera de eso, los
// documentos de compra son manuales salvo que el tipo sea auto-emitido
// (gastos menores, informales, exterior).
func requiresManualNumber(ctx context.Context, invoiceRepo repository.InvoiceRepository, inv *entity.FiscalInvoice, docType *entity.DocumentType) (bool, error) {
	if inv.ReversedEntryID != "" {
		reversed, err := invoiceRepo.GetByID(ctx, inv.ReversedEntryID)
		if err != nil {
			return false, err
		}
		if reversed == nil {
			return false, domain.ErrNotFound
		}
		return reversed.ManualNumber, nil
	}
	return inv.IsPurchase() && !docType.IsVendorType(), nil
}

// directionGroup devuelve el grupo de dirección del alcance de secuencia.
// Depende del tipo de documento (auto-emitido en compras o no), no del
// movimiento puntual.
func directionGroup(docType *entity.DocumentType) []string {
	if docType.IsVendorType() {
		return []string{entity.MoveTypeInInvoice, entity.MoveTypeInRefund}
	}
	return []string{entity.MoveTypeOutInvoice, entity.MoveTypeOutRefund}
}

// normalizeManualNumber valida el número digitado contra el tipo elegido y
// lo re-emite con el relleno de ceros canónico.
func normalizeManualNumber(proposed string, docType *entity.DocumentType) (string, error) {
	proposed = strings.ToUpper(strings.TrimSpace(proposed))
	if proposed == "" {
		return "", domain.ErrManualNumberRequired
	}
	if !strings.HasPrefix(proposed, docType.DocCodePrefix) {
		return "", domain.ErrInvalidDocumentNumber
	}
	seq := ncf.ParseSequence(proposed)
	if seq.Width == 0 {
		return "", domain.ErrInvalidDocumentNumber
	}
	return seq.Format(), nil
}
