package fiscal

import (
	"context"

	"github.com/jhoicas/fiscal-do-api/internal/domain"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
)

// DocumentTypeResolver decide qué tipos de documento legal son elegibles
// para una factura y si su numeración es manual o auto-secuenciada.
type DocumentTypeResolver struct {
	invoiceRepo repository.InvoiceRepository
	partnerRepo repository.PartnerRepository
	journalRepo repository.JournalRepository
	docTypeRepo repository.DocumentTypeRepository
	companyRepo repository.CompanyRepository
}

// NewDocumentTypeResolver construye el resolver.
func NewDocumentTypeResolver(
	invoiceRepo repository.InvoiceRepository,
	partnerRepo repository.PartnerRepository,
	journalRepo repository.JournalRepository,
	docTypeRepo repository.DocumentTypeRepository,
	companyRepo repository.CompanyRepository,
) *DocumentTypeResolver {
	return &DocumentTypeResolver{
		invoiceRepo: invoiceRepo,
		partnerRepo: partnerRepo,
		journalRepo: journalRepo,
		docTypeRepo: docTypeRepo,
		companyRepo: companyRepo,
	}
}

// EligibleDocumentTypes devuelve los tipos de documento que la factura puede
// usar. Solo aplica el filtro dominicano cuando el documento es DO y el
// diario lleva documentos legales; en caso contrario devuelve el catálogo
// del país de la compañía (comportamiento por defecto del anfitrión).
func (r *DocumentTypeResolver) EligibleDocumentTypes(ctx context.Context, companyID, invoiceID string) ([]*entity.DocumentType, error) {
	inv, err := r.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := r.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	journal, err := r.journalRepo.GetByID(ctx, inv.JournalID)
	if err != nil || journal == nil {
		return nil, domain.ErrNotFound
	}

	if inv.CountryCode != dgii.CountryCode || !journal.UseDocuments {
		return r.docTypeRepo.ListByCountry(ctx, company.CountryCode)
	}

	// Tipos internos elegibles: nota de débito siempre; nota de crédito en
	// reversiones, factura en el resto.
	internalTypes := map[string]struct{}{entity.InternalTypeDebitNote: {}}
	if inv.IsRefund() {
		internalTypes[entity.InternalTypeCreditNote] = struct{}{}
	} else {
		internalTypes[entity.InternalTypeInvoice] = struct{}{}
	}

	partner, err := r.partnerRepo.GetCommercial(ctx, inv.PartnerID)
	if err != nil || partner == nil {
		return nil, domain.ErrNotFound
	}
	ncfTypes := journal.NCFTypes(partner.TaxPayerType, company.ECFIssuer)

	all, err := r.docTypeRepo.ListByCountry(ctx, company.CountryCode)
	if err != nil {
		return nil, err
	}
	var eligible []*entity.DocumentType
	for _, dt := range all {
		if _, ok := internalTypes[dt.InternalType]; !ok {
			continue
		}
		// Un tipo sin NCFType es comodín: siempre elegible.
		if dt.NCFType != "" && !contains(ncfTypes, dt.NCFType) {
			continue
		}
		if !journal.AllowsCode(dt.Code) {
			continue
		}
		eligible = append(eligible, dt)
	}
	return eligible, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
