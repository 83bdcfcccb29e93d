package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
)

var _ repository.JournalRepository = (*JournalRepo)(nil)

// JournalRepo implementación de JournalRepository (usable con pool o tx).
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

// GetByID carga el diario con sus códigos permitidos y los tipos de
// documento autorizados (con vigencia de secuencia).
func (r *JournalRepo) GetByID(ctx context.Context, id string) (*entity.Journal, error) {
	const query = `
		SELECT id, company_id, name, type, use_documents, created_at, updated_at
		FROM journals WHERE id = $1`
	var j entity.Journal
	err := r.q.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.CompanyID, &j.Name, &j.Type, &j.UseDocuments, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal: %w", err)
	}

	const codesQuery = `SELECT code FROM journal_document_codes WHERE journal_id = $1 ORDER BY code`
	rows, err := r.q.Query(ctx, codesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list journal_document_codes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan journal_document_code: %w", err)
		}
		j.DocumentCodes = append(j.DocumentCodes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const typesQuery = `
		SELECT document_type_id, ncf_expiration_date
		FROM journal_document_types
		WHERE journal_id = $1`
	typeRows, err := r.q.Query(ctx, typesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list journal_document_types: %w", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var dt entity.JournalDocumentType
		if err := typeRows.Scan(&dt.DocumentTypeID, &dt.NCFExpirationDate); err != nil {
			return nil, fmt.Errorf("scan journal_document_type: %w", err)
		}
		j.DocumentTypes = append(j.DocumentTypes, dt)
	}
	if err := typeRows.Err(); err != nil {
		return nil, err
	}
	return &j, nil
}

var _ repository.DocumentTypeRepository = (*DocumentTypeRepo)(nil)

// DocumentTypeRepo catálogo de tipos de documento legal (usable con pool o tx).
type DocumentTypeRepo struct {
	q Querier
}

// NewDocumentTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentTypeRepository(q Querier) *DocumentTypeRepo {
	return &DocumentTypeRepo{q: q}
}

// GetByID obtiene un tipo de documento; nil si no existe.
func (r *DocumentTypeRepo) GetByID(ctx context.Context, id string) (*entity.DocumentType, error) {
	const query = `
		SELECT id, name, doc_code_prefix, code, internal_type, ncf_type, country_code
		FROM document_types WHERE id = $1`
	d, err := scanDocumentType(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document_type: %w", err)
	}
	return d, nil
}

// ListByCountry lista el catálogo de un país en orden estable.
func (r *DocumentTypeRepo) ListByCountry(ctx context.Context, countryCode string) ([]*entity.DocumentType, error) {
	const query = `
		SELECT id, name, doc_code_prefix, code, internal_type, ncf_type, country_code
		FROM document_types
		WHERE country_code = $1
		ORDER BY code`
	rows, err := r.q.Query(ctx, query, countryCode)
	if err != nil {
		return nil, fmt.Errorf("list document_types: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentType
	for rows.Next() {
		d, err := scanDocumentType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document_type: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDocumentType(row pgxScanner) (*entity.DocumentType, error) {
	var (
		d       entity.DocumentType
		ncfType *string
	)
	err := row.Scan(&d.ID, &d.Name, &d.DocCodePrefix, &d.Code, &d.InternalType, &ncfType, &d.CountryCode)
	if err != nil {
		return nil, err
	}
	d.NCFType = strOrEmpty(ncfType)
	return &d, nil
}
