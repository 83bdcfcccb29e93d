package fiscal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fiscal-do-api/internal/application/dto"
	"github.com/jhoicas/fiscal-do-api/internal/domain"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/ncf"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
	"github.com/jhoicas/fiscal-do-api/pkg/logger"
)

// Identificadores de plantilla de reporte para el motor de reportes del
// anfitrión.
const (
	ReportInvoiceDefault = "reports/invoice"
	ReportInvoiceFiscal  = "reports/fiscal_invoice_do"
)

// InvoiceUseCase registro, consulta, borrado y desglose fiscal de documentos.
type InvoiceUseCase struct {
	txRunner    FiscalTxRunner
	invoiceRepo repository.InvoiceRepository
	partnerRepo repository.PartnerRepository
	journalRepo repository.JournalRepository
	companyRepo repository.CompanyRepository
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner FiscalTxRunner,
	invoiceRepo repository.InvoiceRepository,
	partnerRepo repository.PartnerRepository,
	journalRepo repository.JournalRepository,
	companyRepo repository.CompanyRepository,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		partnerRepo: partnerRepo,
		journalRepo: journalRepo,
		companyRepo: companyRepo,
		log:         log,
	}
}

// Create registra un documento en borrador sincronizado desde el sistema
// contable anfitrión. Deriva país, moneda y montos base de la compañía, el
// diario y las líneas.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.JournalID == "" || in.PartnerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	journal, err := uc.journalRepo.GetByID(ctx, in.JournalID)
	if err != nil || journal == nil {
		return nil, domain.ErrNotFound
	}
	if journal.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	partner, err := uc.partnerRepo.GetByID(ctx, in.PartnerID)
	if err != nil || partner == nil {
		return nil, domain.ErrNotFound
	}

	date := time.Now()
	if in.Date != "" {
		if date, err = time.Parse("2006-01-02", in.Date); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	currency := in.CurrencyCode
	if currency == "" {
		currency = company.CurrencyCode
	}

	now := time.Now()
	inv := &entity.FiscalInvoice{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		JournalID:       journal.ID,
		PartnerID:       partner.ID,
		MoveType:        in.MoveType,
		CountryCode:     company.CountryCode,
		UseDocuments:    journal.UseDocuments,
		CurrencyCode:    currency,
		State:           entity.StateDraft,
		ReversedEntryID: in.ReversedEntryID,
		Date:            date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	lines := make([]entity.InvoiceLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		taxes := make([]entity.AppliedTax, 0, len(l.Taxes))
		for _, t := range l.Taxes {
			taxes = append(taxes, entity.AppliedTax{Group: t.Group, Rate: t.Rate})
		}
		line := entity.InvoiceLine{
			ID:             uuid.New().String(),
			InvoiceID:      inv.ID,
			Name:           l.Name,
			IsTaxLine:      l.IsTaxLine,
			TaxGroup:       l.TaxGroup,
			TaxRate:        l.TaxRate,
			Taxes:          taxes,
			Quantity:       l.Quantity,
			PriceUnit:      l.PriceUnit,
			PriceSubtotal:  l.PriceSubtotal,
			PriceTotal:     l.PriceTotal,
			Balance:        l.Balance,
			AmountCurrency: l.AmountCurrency,
		}
		if !line.IsTaxLine {
			inv.AmountUntaxed = inv.AmountUntaxed.Add(line.PriceSubtotal)
			// Las líneas de producto de venta son crédito (balance negativo);
			// la base con signo se obtiene negando la suma: positiva en
			// ventas, negativa en compras y reversiones de venta.
			inv.AmountUntaxedSigned = inv.AmountUntaxedSigned.Sub(line.Balance)
		}
		lines = append(lines, line)
	}
	inv.Lines = lines

	err = uc.txRunner.RunFiscal(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PartnerRepository,
		_ repository.JournalRepository,
		_ repository.DocumentTypeRepository,
	) error {
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for i := range inv.Lines {
			if err := invoiceRepo.CreateLine(ctx, &inv.Lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv), nil
}

// Get obtiene un documento por ID.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(inv), nil
}

// Delete elimina un documento en borrador. Un documento fiscal DO de compra
// que fue publicado alguna vez no se puede eliminar nunca, aunque hoy esté
// revertido a borrador.
func (uc *InvoiceUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.txRunner.RunFiscal(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PartnerRepository,
		_ repository.JournalRepository,
		_ repository.DocumentTypeRepository,
	) error {
		inv, err := invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil || inv.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if inv.IsPurchase() && inv.CountryCode == dgii.CountryCode && inv.UseDocuments && inv.PostedBefore {
			return domain.ErrPostedFiscalInvoice
		}
		if inv.State == entity.StatePosted {
			return domain.ErrConflict
		}
		return invoiceRepo.Delete(ctx, id)
	})
}

// Amounts calcula el desglose ITBIS del documento para reportes fiscales y
// exportación de e-CF. companyCurrency selecciona el modo de moneda.
func (uc *InvoiceUseCase) Amounts(ctx context.Context, companyID, id string, companyCurrency bool) (*dto.FiscalAmountsResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	amounts := ncf.InvoiceAmounts(inv, company.CurrencyCode, company.ITBISGroup, companyCurrency)
	return &dto.FiscalAmountsResponse{
		ITBISAmount:         amounts.ITBISAmount,
		ITBISTaxableAmount:  amounts.ITBISTaxableAmount,
		ITBISExemptAmount:   amounts.ITBISExemptAmount,
		CompanyInvoiceTotal: amounts.CompanyInvoiceTotal,
		InvoiceTotal:        amounts.InvoiceTotal,
	}, nil
}

// ReportName devuelve el identificador de plantilla de reporte: la variante
// fiscal dominicana cuando el documento lleva comprobantes.
func ReportName(inv *entity.FiscalInvoice) string {
	if inv.UseDocuments && inv.CountryCode == dgii.CountryCode {
		return ReportInvoiceFiscal
	}
	return ReportInvoiceDefault
}

func (uc *InvoiceUseCase) toResponse(inv *entity.FiscalInvoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                inv.ID,
		CompanyID:         inv.CompanyID,
		JournalID:         inv.JournalID,
		PartnerID:         inv.PartnerID,
		MoveType:          inv.MoveType,
		State:             inv.State,
		DocumentTypeID:    inv.DocumentTypeID,
		DocumentNumber:    inv.DocumentNumber,
		ManualNumber:      inv.ManualNumber,
		NCFExpirationDate: inv.NCFExpirationDate,
		ReportName:        ReportName(inv),
	}
}
