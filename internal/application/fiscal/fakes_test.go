package fiscal_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/fiscal-do-api/internal/application/fiscal"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
	"github.com/jhoicas/fiscal-do-api/pkg/logger"
)

// memStore estado compartido de los repositorios en memoria para pruebas.
type memStore struct {
	invoices  map[string]*entity.FiscalInvoice
	partners  map[string]*entity.Partner
	journals  map[string]*entity.Journal
	docTypes  map[string]*entity.DocumentType
	companies map[string]*entity.Company
}

func newMemStore() *memStore {
	return &memStore{
		invoices:  map[string]*entity.FiscalInvoice{},
		partners:  map[string]*entity.Partner{},
		journals:  map[string]*entity.Journal{},
		docTypes:  map[string]*entity.DocumentType{},
		companies: map[string]*entity.Company{},
	}
}

func (s *memStore) invoiceRepo() repository.InvoiceRepository { return &memInvoiceRepo{s: s} }
func (s *memStore) partnerRepo() repository.PartnerRepository { return &memPartnerRepo{s: s} }
func (s *memStore) journalRepo() repository.JournalRepository { return &memJournalRepo{s: s} }
func (s *memStore) docTypeRepo() repository.DocumentTypeRepository {
	return &memDocTypeRepo{s: s}
}
func (s *memStore) companyRepo() repository.CompanyRepository { return &memCompanyRepo{s: s} }

// txRunner ejecuta la función directamente sobre los repositorios en memoria.
type fakeTxRunner struct{ s *memStore }

var _ fiscal.FiscalTxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunFiscal(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	partnerRepo repository.PartnerRepository,
	journalRepo repository.JournalRepository,
	docTypeRepo repository.DocumentTypeRepository,
) error) error {
	return fn(r.s.invoiceRepo(), r.s.partnerRepo(), r.s.journalRepo(), r.s.docTypeRepo())
}

// ── InvoiceRepository ─────────────────────────────────────────────────────────

type memInvoiceRepo struct{ s *memStore }

var _ repository.InvoiceRepository = (*memInvoiceRepo)(nil)

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.FiscalInvoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateLine(_ context.Context, line *entity.InvoiceLine) error {
	inv, ok := r.s.invoices[line.InvoiceID]
	if !ok {
		return nil
	}
	inv.Lines = append(inv.Lines, *line)
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.FiscalInvoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) UpdateNumber(_ context.Context, id, documentNumber string, manual bool) error {
	inv := r.s.invoices[id]
	inv.DocumentNumber = documentNumber
	inv.ManualNumber = manual
	return nil
}

func (r *memInvoiceRepo) SetPosted(_ context.Context, id string, expiration *time.Time) error {
	inv := r.s.invoices[id]
	inv.State = entity.StatePosted
	inv.PostedBefore = true
	inv.NCFExpirationDate = expiration
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id string) error {
	delete(r.s.invoices, id)
	return nil
}

func (r *memInvoiceRepo) LastDocumentNumber(_ context.Context, documentTypeID, companyID string, moveTypes []string) (string, error) {
	inGroup := func(mt string) bool {
		for _, m := range moveTypes {
			if m == mt {
				return true
			}
		}
		return false
	}
	var last string
	for _, inv := range r.s.invoices {
		if inv.DocumentTypeID != documentTypeID || inv.CompanyID != companyID {
			continue
		}
		if !inGroup(inv.MoveType) || inv.DocumentNumber == "" || inv.State == entity.StateCancel {
			continue
		}
		if inv.DocumentNumber > last {
			last = inv.DocumentNumber
		}
	}
	return last, nil
}

func (r *memInvoiceRepo) HasPostedFiscalInvoices(_ context.Context, commercialPartnerID string) (bool, error) {
	for _, inv := range r.s.invoices {
		p, ok := r.s.partners[inv.PartnerID]
		if !ok {
			continue
		}
		commercial := p.ID
		if p.ParentID != "" {
			commercial = p.ParentID
		}
		if commercial != commercialPartnerID {
			continue
		}
		if inv.State == entity.StatePosted && inv.CountryCode == dgii.CountryCode && inv.UseDocuments {
			return true, nil
		}
	}
	return false, nil
}

// ── PartnerRepository ─────────────────────────────────────────────────────────

type memPartnerRepo struct{ s *memStore }

var _ repository.PartnerRepository = (*memPartnerRepo)(nil)

func (r *memPartnerRepo) Create(_ context.Context, p *entity.Partner) error {
	cp := *p
	r.s.partners[p.ID] = &cp
	return nil
}

func (r *memPartnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	p, ok := r.s.partners[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPartnerRepo) GetCommercial(_ context.Context, id string) (*entity.Partner, error) {
	p, ok := r.s.partners[id]
	if !ok {
		return nil, nil
	}
	if p.ParentID != "" {
		if parent, ok := r.s.partners[p.ParentID]; ok {
			cp := *parent
			return &cp, nil
		}
	}
	cp := *p
	return &cp, nil
}

func (r *memPartnerRepo) Update(_ context.Context, p *entity.Partner) error {
	cp := *p
	r.s.partners[p.ID] = &cp
	return nil
}

func (r *memPartnerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Partner, error) {
	var out []*entity.Partner
	for _, p := range r.s.partners {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ── JournalRepository / DocumentTypeRepository / CompanyRepository ────────────

type memJournalRepo struct{ s *memStore }

var _ repository.JournalRepository = (*memJournalRepo)(nil)

func (r *memJournalRepo) GetByID(_ context.Context, id string) (*entity.Journal, error) {
	j, ok := r.s.journals[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

type memDocTypeRepo struct{ s *memStore }

var _ repository.DocumentTypeRepository = (*memDocTypeRepo)(nil)

func (r *memDocTypeRepo) GetByID(_ context.Context, id string) (*entity.DocumentType, error) {
	dt, ok := r.s.docTypes[id]
	if !ok {
		return nil, nil
	}
	cp := *dt
	return &cp, nil
}

func (r *memDocTypeRepo) ListByCountry(_ context.Context, countryCode string) ([]*entity.DocumentType, error) {
	var out []*entity.DocumentType
	for _, dt := range r.s.docTypes {
		if dt.CountryCode == countryCode {
			cp := *dt
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type memCompanyRepo struct{ s *memStore }

var _ repository.CompanyRepository = (*memCompanyRepo)(nil)

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// seedStore arma una compañía dominicana con diarios de venta y compra, el
// catálogo mínimo de tipos de documento y dos contrapartes típicos.
func seedStore() *memStore {
	s := newMemStore()

	s.companies["co-1"] = &entity.Company{
		ID:                "co-1",
		Name:              "Comercial Quisqueya SRL",
		RNC:               "101000001",
		CountryCode:       dgii.CountryCode,
		DefaultClientType: dgii.ClientTypeNonFiscal,
		CurrencyCode:      "DOP",
		ITBISGroup:        "ITBIS",
	}

	s.journals["j-sale"] = &entity.Journal{
		ID:           "j-sale",
		CompanyID:    "co-1",
		Name:         "Ventas",
		Type:         entity.JournalTypeSale,
		UseDocuments: true,
		DocumentTypes: []entity.JournalDocumentType{
			{DocumentTypeID: "dt-b01", NCFExpirationDate: timePtr(2026, 12, 31)},
			{DocumentTypeID: "dt-b02", NCFExpirationDate: timePtr(2026, 12, 31)},
			{DocumentTypeID: "dt-b04"},
		},
	}
	s.journals["j-buy"] = &entity.Journal{
		ID:           "j-buy",
		CompanyID:    "co-1",
		Name:         "Compras",
		Type:         entity.JournalTypePurchase,
		UseDocuments: true,
		DocumentTypes: []entity.JournalDocumentType{
			{DocumentTypeID: "dt-b01"},
			{DocumentTypeID: "dt-b11"},
			{DocumentTypeID: "dt-b13"},
		},
	}

	for _, dt := range []*entity.DocumentType{
		{ID: "dt-b01", Name: "Crédito Fiscal", DocCodePrefix: "B01", Code: "B01", InternalType: entity.InternalTypeInvoice, NCFType: dgii.NCFTypeFiscal, CountryCode: dgii.CountryCode},
		{ID: "dt-b02", Name: "Consumo", DocCodePrefix: "B02", Code: "B02", InternalType: entity.InternalTypeInvoice, NCFType: dgii.NCFTypeConsumer, CountryCode: dgii.CountryCode},
		{ID: "dt-b04", Name: "Nota de Crédito", DocCodePrefix: "B04", Code: "B04", InternalType: entity.InternalTypeCreditNote, NCFType: "", CountryCode: dgii.CountryCode},
		{ID: "dt-b11", Name: "Comprobante de Compras", DocCodePrefix: "B11", Code: "B11", InternalType: entity.InternalTypeInvoice, NCFType: dgii.NCFTypeInformal, CountryCode: dgii.CountryCode},
		{ID: "dt-b13", Name: "Gastos Menores", DocCodePrefix: "B13", Code: "B13", InternalType: entity.InternalTypeInvoice, NCFType: dgii.NCFTypeMinor, CountryCode: dgii.CountryCode},
		{ID: "dt-e31", Name: "Factura de Crédito Fiscal Electrónica", DocCodePrefix: "E31", Code: "E31", InternalType: entity.InternalTypeInvoice, NCFType: dgii.NCFTypeEFiscal, CountryCode: dgii.CountryCode},
	} {
		s.docTypes[dt.ID] = dt
	}

	s.partners["p-rnc"] = &entity.Partner{
		ID:           "p-rnc",
		CompanyID:    "co-1",
		Name:         "Ferretería Central SRL",
		VAT:          "131246791",
		CountryCode:  dgii.CountryCode,
		TaxPayerType: dgii.TaxPayerTypeTaxpayer,
	}
	s.partners["p-final"] = &entity.Partner{
		ID:           "p-final",
		CompanyID:    "co-1",
		Name:         "Juana Pérez",
		CountryCode:  dgii.CountryCode,
		TaxPayerType: dgii.TaxPayerTypeNonPayer,
	}

	return s
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// draftInvoice agrega al store un documento en borrador listo para numerar o
// publicar.
func draftInvoice(s *memStore, id string, mutate func(*entity.FiscalInvoice)) *entity.FiscalInvoice {
	inv := &entity.FiscalInvoice{
		ID:           id,
		CompanyID:    "co-1",
		JournalID:    "j-sale",
		PartnerID:    "p-rnc",
		MoveType:     entity.MoveTypeOutInvoice,
		CountryCode:  dgii.CountryCode,
		UseDocuments: true,
		CurrencyCode: "DOP",
		State:        entity.StateDraft,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(inv)
	}
	s.invoices[inv.ID] = inv
	return inv
}
