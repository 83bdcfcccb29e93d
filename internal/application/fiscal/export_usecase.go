package fiscal

import (
	"context"
	"fmt"

	"github.com/jhoicas/fiscal-do-api/internal/domain"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/ncf"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
	"github.com/jhoicas/fiscal-do-api/pkg/logger"
)

// ECFDocument resultado de la exportación de un e-CF.
type ECFDocument struct {
	XML          []byte
	SecurityCode string
	QRURL        string
}

// ExportUseCase genera las representaciones externas de un documento
// publicado: el XML del e-CF con su código de seguridad y el PDF impreso.
type ExportUseCase struct {
	invoiceRepo repository.InvoiceRepository
	partnerRepo repository.PartnerRepository
	docTypeRepo repository.DocumentTypeRepository
	companyRepo repository.CompanyRepository
	ecf         ECFExporter
	pdf         InvoicePDFGenerator
	log         *logger.Logger
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(
	invoiceRepo repository.InvoiceRepository,
	partnerRepo repository.PartnerRepository,
	docTypeRepo repository.DocumentTypeRepository,
	companyRepo repository.CompanyRepository,
	ecf ECFExporter,
	pdf InvoicePDFGenerator,
	log *logger.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		invoiceRepo: invoiceRepo,
		partnerRepo: partnerRepo,
		docTypeRepo: docTypeRepo,
		companyRepo: companyRepo,
		ecf:         ecf,
		pdf:         pdf,
		log:         log,
	}
}

// ExportECF genera el XML del e-CF de un documento publicado, junto con el
// código de seguridad y la URL de consulta DGII para el código QR.
func (uc *ExportUseCase) ExportECF(ctx context.Context, companyID, id string) (*ECFDocument, error) {
	inv, company, partner, docType, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv.State != entity.StatePosted {
		return nil, domain.ErrConflict
	}
	if !docType.IsElectronic() {
		return nil, fmt.Errorf("%w: el tipo %s no es electrónico", domain.ErrInvalidInput, docType.Code)
	}

	amounts := ncf.InvoiceAmounts(inv, company.CurrencyCode, company.ITBISGroup, false)
	xmlDoc, securityCode, err := uc.ecf.Build(inv, company, partner, docType, amounts)
	if err != nil {
		return nil, fmt.Errorf("construyendo e-CF: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("ncf", inv.DocumentNumber).
		Msg("e-CF generado")

	return &ECFDocument{
		XML:          xmlDoc,
		SecurityCode: securityCode,
		QRURL: fmt.Sprintf("%s?RncEmisor=%s&ENCF=%s&CodigoSeguridad=%s",
			dgii.ConsultaURL, company.RNC, inv.DocumentNumber, securityCode),
	}, nil
}

// GeneratePDF genera la representación impresa del documento.
func (uc *ExportUseCase) GeneratePDF(ctx context.Context, companyID, id string) ([]byte, error) {
	inv, company, partner, docType, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	amounts := ncf.InvoiceAmounts(inv, company.CurrencyCode, company.ITBISGroup, false)
	pdf, err := uc.pdf.GenerateInvoicePDF(ctx, inv, company, partner, docType, amounts)
	if err != nil {
		return nil, fmt.Errorf("generando PDF: %w", err)
	}
	return pdf, nil
}

func (uc *ExportUseCase) load(ctx context.Context, companyID, id string) (*entity.FiscalInvoice, *entity.Company, *entity.Partner, *entity.DocumentType, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	if inv.DocumentTypeID == "" {
		return nil, nil, nil, nil, domain.ErrInvalidDocumentNumber
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	partner, err := uc.partnerRepo.GetByID(ctx, inv.PartnerID)
	if err != nil || partner == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	docType, err := uc.docTypeRepo.GetByID(ctx, inv.DocumentTypeID)
	if err != nil || docType == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	return inv, company, partner, docType, nil
}
