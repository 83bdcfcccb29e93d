package partner

import (
	"context"
	"strings"
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

// UseCase gestiona contrapartes: alta con clasificación DGII automática,
// actualización con bloqueo de campos fiscales y consulta.
type UseCase struct {
	partnerRepo repository.PartnerRepository
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de contrapartes.
func NewUseCase(
	partnerRepo repository.PartnerRepository,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		partnerRepo: partnerRepo,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		log:         log,
	}
}

// Create registra un contraparte. Si la compañía es dominicana y el request
// no trae país, se asume DO; la clasificación DGII se deriva de inmediato.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	if in.ParentID != "" {
		parent, err := uc.partnerRepo.GetByID(ctx, in.ParentID)
		if err != nil || parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	country := in.CountryCode
	if country == "" && company.CountryCode == dgii.CountryCode {
		country = dgii.CountryCode
	}

	now := time.Now()
	p := &entity.Partner{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ParentID:    in.ParentID,
		Name:        strings.TrimSpace(in.Name),
		VAT:         strings.TrimSpace(in.VAT),
		CountryCode: country,
		Email:       in.Email,
		Phone:       in.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	uc.classify(p, company)

	if err := uc.partnerRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("partner_id", p.ID).Str("tax_payer_type", p.TaxPayerType).Msg("contraparte creado")
	return toResponse(p), nil
}

// Update aplica cambios sobre un contraparte. Los campos fiscales (nombre,
// VAT, país) quedan congelados cuando el contraparte tiene documentos
// fiscales publicados; los sub-contactos están exentos del bloqueo. Si algún
// campo de identidad cambió, se reclasifica.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	p, err := uc.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}

	touchesFiscal := (in.Name != nil && *in.Name != p.Name) ||
		(in.VAT != nil && *in.VAT != p.VAT) ||
		(in.CountryCode != nil && *in.CountryCode != p.CountryCode)

	if touchesFiscal && !p.IsContact() {
		locked, err := uc.invoiceRepo.HasPostedFiscalInvoices(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, domain.ErrFiscalFieldLocked
		}
	}

	identityChanged := touchesFiscal
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.VAT != nil {
		p.VAT = strings.TrimSpace(*in.VAT)
	}
	if in.CountryCode != nil {
		p.CountryCode = *in.CountryCode
	}
	if in.TaxPayerType != nil {
		// Selección manual: se respeta tal cual, sin pasar por el
		// clasificador. Solo nombre, VAT y país reclasifican.
		p.TaxPayerType = *in.TaxPayerType
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}

	if identityChanged {
		uc.classify(p, company)
	}
	p.UpdatedAt = time.Now()

	if err := uc.partnerRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// Get obtiene un contraparte por ID.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.PartnerResponse, error) {
	p, err := uc.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toResponse(p), nil
}

// List pagina los contrapartes de la compañía.
func (uc *UseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.PartnerResponse, error) {
	page.DefaultPage()
	items, err := uc.partnerRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartnerResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p))
	}
	return out, nil
}

// classify deriva la clasificación DGII y, si el VAT estaba vacío pero el
// nombre tiene forma de RNC/cédula, lo adopta como identificador.
func (uc *UseCase) classify(p *entity.Partner, company *entity.Company) {
	result := ncf.Classify(ncf.PartnerIdentity{
		VAT:         p.VAT,
		Name:        p.Name,
		CountryCode: p.CountryCode,
		CurrentType: p.TaxPayerType,
	}, ncf.ClassifierConfig{DefaultClientType: company.DefaultClientType})
	p.TaxPayerType = result.TaxPayerType
	if result.DerivedVAT != "" && p.VAT == "" {
		p.VAT = result.DerivedVAT
	}
}

func toResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		ParentID:     p.ParentID,
		Name:         p.Name,
		VAT:          p.VAT,
		CountryCode:  p.CountryCode,
		TaxPayerType: p.TaxPayerType,
		Email:        p.Email,
		Phone:        p.Phone,
	}
}
