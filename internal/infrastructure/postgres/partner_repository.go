package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación de PartnerRepository (usable con pool o tx).
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// Create persiste un contraparte.
func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	const query = `
		INSERT INTO partners (
			id, company_id, parent_id, name, vat, country_code,
			tax_payer_type, email, phone, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullIfEmpty(p.ParentID), p.Name, nullIfEmpty(p.VAT), nullIfEmpty(p.CountryCode),
		nullIfEmpty(p.TaxPayerType), nullIfEmpty(p.Email), nullIfEmpty(p.Phone), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contraparte duplicado: %w", err)
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtiene un contraparte; nil si no existe.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	const query = `
		SELECT id, company_id, parent_id, name, vat, country_code,
		       tax_payer_type, email, phone, created_at, updated_at
		FROM partners WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetCommercial resuelve el contraparte comercial: el propio partner o su
// padre cuando es un sub-contacto.
func (r *PartnerRepo) GetCommercial(ctx context.Context, id string) (*entity.Partner, error) {
	const query = `
		SELECT c.id, c.company_id, c.parent_id, c.name, c.vat, c.country_code,
		       c.tax_payer_type, c.email, c.phone, c.created_at, c.updated_at
		FROM partners p
		JOIN partners c ON c.id = COALESCE(p.parent_id, p.id)
		WHERE p.id = $1`
	return r.getOne(ctx, query, id)
}

// Update actualiza todos los campos editables del contraparte.
func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	const query = `
		UPDATE partners
		SET name = $2, vat = $3, country_code = $4, tax_payer_type = $5,
		    email = $6, phone = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.VAT), nullIfEmpty(p.CountryCode), nullIfEmpty(p.TaxPayerType),
		nullIfEmpty(p.Email), nullIfEmpty(p.Phone),
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListByCompany pagina los contrapartes de la compañía.
func (r *PartnerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Partner, error) {
	const query = `
		SELECT id, company_id, parent_id, name, vat, country_code,
		       tax_payer_type, email, phone, created_at, updated_at
		FROM partners
		WHERE company_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var list []*entity.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartnerRepo) getOne(ctx context.Context, query, id string) (*entity.Partner, error) {
	p, err := scanPartner(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar scanPartner.
type pgxScanner interface {
	Scan(dest ...any) error
}

func scanPartner(row pgxScanner) (*entity.Partner, error) {
	var (
		p                          entity.Partner
		parentID, vat, country     *string
		taxPayerType, email, phone *string
	)
	err := row.Scan(
		&p.ID, &p.CompanyID, &parentID, &p.Name, &vat, &country,
		&taxPayerType, &email, &phone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ParentID = strOrEmpty(parentID)
	p.VAT = strOrEmpty(vat)
	p.CountryCode = strOrEmpty(country)
	p.TaxPayerType = strOrEmpty(taxPayerType)
	p.Email = strOrEmpty(email)
	p.Phone = strOrEmpty(phone)
	return &p, nil
}
