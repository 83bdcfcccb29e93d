package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para compañías.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// GetByID obtiene una compañía por ID con su configuración fiscal.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	const query = `
		SELECT id, name, rnc, country_code, default_client_type, ecf_issuer,
		       currency_code, itbis_group, address, phone, email, created_at, updated_at
		FROM companies WHERE id = $1`
	var (
		c                     entity.Company
		address, phone, email *string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.RNC, &c.CountryCode, &c.DefaultClientType, &c.ECFIssuer,
		&c.CurrencyCode, &c.ITBISGroup, &address, &phone, &email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	c.Address = strOrEmpty(address)
	c.Phone = strOrEmpty(phone)
	c.Email = strOrEmpty(email)
	return &c, nil
}
