package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/repository"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera del documento fiscal.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.FiscalInvoice) error {
	const query = `
		INSERT INTO fiscal_invoices (
			id, company_id, journal_id, partner_id, move_type, country_code,
			use_documents, document_type_id, document_number, manual_number,
			ncf_expiration_date, currency_code, state, posted_before,
			reversed_entry_id, date, amount_untaxed, amount_untaxed_signed,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.JournalID, inv.PartnerID, inv.MoveType, inv.CountryCode,
		inv.UseDocuments, nullIfEmpty(inv.DocumentTypeID), nullIfEmpty(inv.DocumentNumber), inv.ManualNumber,
		inv.NCFExpirationDate, inv.CurrencyCode, inv.State, inv.PostedBefore,
		nullIfEmpty(inv.ReversedEntryID), inv.Date, inv.AmountUntaxed, inv.AmountUntaxedSigned,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("documento duplicado: %w", err)
		}
		return fmt.Errorf("insert fiscal_invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del documento con sus impuestos aplicados.
func (r *InvoiceRepo) CreateLine(ctx context.Context, line *entity.InvoiceLine) error {
	const query = `
		INSERT INTO fiscal_invoice_lines (
			id, invoice_id, name, is_tax_line, tax_group, tax_rate,
			quantity, price_unit, price_subtotal, price_total, balance, amount_currency
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.InvoiceID, line.Name, line.IsTaxLine, nullIfEmpty(line.TaxGroup), line.TaxRate,
		line.Quantity, line.PriceUnit, line.PriceSubtotal, line.PriceTotal, line.Balance, line.AmountCurrency,
	)
	if err != nil {
		return fmt.Errorf("insert fiscal_invoice_line: %w", err)
	}
	const taxQuery = `
		INSERT INTO fiscal_invoice_line_taxes (line_id, tax_group, tax_rate)
		VALUES ($1, $2, $3)`
	for _, t := range line.Taxes {
		if _, err := r.q.Exec(ctx, taxQuery, line.ID, t.Group, t.Rate); err != nil {
			return fmt.Errorf("insert fiscal_invoice_line_tax: %w", err)
		}
	}
	return nil
}

// GetByID carga el documento con todas sus líneas e impuestos aplicados.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.FiscalInvoice, error) {
	const query = `
		SELECT id, company_id, journal_id, partner_id, move_type, country_code,
		       use_documents, document_type_id, document_number, manual_number,
		       ncf_expiration_date, currency_code, state, posted_before,
		       reversed_entry_id, date, amount_untaxed, amount_untaxed_signed,
		       created_at, updated_at
		FROM fiscal_invoices WHERE id = $1`
	var (
		inv             entity.FiscalInvoice
		docTypeID       *string
		docNumber       *string
		reversedEntryID *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.JournalID, &inv.PartnerID, &inv.MoveType, &inv.CountryCode,
		&inv.UseDocuments, &docTypeID, &docNumber, &inv.ManualNumber,
		&inv.NCFExpirationDate, &inv.CurrencyCode, &inv.State, &inv.PostedBefore,
		&reversedEntryID, &inv.Date, &inv.AmountUntaxed, &inv.AmountUntaxedSigned,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal_invoice: %w", err)
	}
	inv.DocumentTypeID = strOrEmpty(docTypeID)
	inv.DocumentNumber = strOrEmpty(docNumber)
	inv.ReversedEntryID = strOrEmpty(reversedEntryID)

	lines, err := r.loadLines(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

func (r *InvoiceRepo) loadLines(ctx context.Context, invoiceID string) ([]entity.InvoiceLine, error) {
	const query = `
		SELECT id, invoice_id, name, is_tax_line, tax_group, tax_rate,
		       quantity, price_unit, price_subtotal, price_total, balance, amount_currency
		FROM fiscal_invoice_lines
		WHERE invoice_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list fiscal_invoice_lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.InvoiceLine
	for rows.Next() {
		var (
			l        entity.InvoiceLine
			taxGroup *string
		)
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.Name, &l.IsTaxLine, &taxGroup, &l.TaxRate,
			&l.Quantity, &l.PriceUnit, &l.PriceSubtotal, &l.PriceTotal, &l.Balance, &l.AmountCurrency,
		); err != nil {
			return nil, fmt.Errorf("scan fiscal_invoice_line: %w", err)
		}
		l.TaxGroup = strOrEmpty(taxGroup)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const taxQuery = `
		SELECT t.line_id, t.tax_group, t.tax_rate
		FROM fiscal_invoice_line_taxes t
		JOIN fiscal_invoice_lines l ON l.id = t.line_id
		WHERE l.invoice_id = $1`
	taxRows, err := r.q.Query(ctx, taxQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list fiscal_invoice_line_taxes: %w", err)
	}
	defer taxRows.Close()

	byLine := make(map[string][]entity.AppliedTax)
	for taxRows.Next() {
		var (
			lineID string
			tax    entity.AppliedTax
		)
		if err := taxRows.Scan(&lineID, &tax.Group, &tax.Rate); err != nil {
			return nil, fmt.Errorf("scan fiscal_invoice_line_tax: %w", err)
		}
		byLine[lineID] = append(byLine[lineID], tax)
	}
	if err := taxRows.Err(); err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Taxes = byLine[lines[i].ID]
	}
	return lines, nil
}

// UpdateNumber asigna el NCF y el modo de numeración del documento.
func (r *InvoiceRepo) UpdateNumber(ctx context.Context, id, documentNumber string, manual bool) error {
	const query = `
		UPDATE fiscal_invoices
		SET document_number = $2, manual_number = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, nullIfEmpty(documentNumber), manual)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("NCF ya asignado a otro documento: %w", err)
		}
		return fmt.Errorf("update document_number: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetPosted transiciona el documento a publicado, marca posted_before y copia
// la fecha de vencimiento de secuencia vigente en el diario.
func (r *InvoiceRepo) SetPosted(ctx context.Context, id string, expiration *time.Time) error {
	const query = `
		UPDATE fiscal_invoices
		SET state = 'posted', posted_before = TRUE, ncf_expiration_date = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, expiration)
	if err != nil {
		return fmt.Errorf("post fiscal_invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete elimina el documento y sus líneas (cascada por FK).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM fiscal_invoices WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete fiscal_invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LastDocumentNumber devuelve el último NCF emitido dentro del alcance tipo
// de documento + compañía + grupo de dirección. FOR UPDATE serializa las
// asignaciones concurrentes de la misma secuencia dentro de la transacción.
func (r *InvoiceRepo) LastDocumentNumber(ctx context.Context, documentTypeID, companyID string, moveTypes []string) (string, error) {
	const query = `
		SELECT document_number
		FROM fiscal_invoices
		WHERE document_type_id = $1
		  AND company_id = $2
		  AND move_type = ANY($3)
		  AND document_number IS NOT NULL
		  AND state <> 'cancel'
		ORDER BY document_number DESC
		LIMIT 1
		FOR UPDATE`
	var number string
	err := r.q.QueryRow(ctx, query, documentTypeID, companyID, moveTypes).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last document_number: %w", err)
	}
	return number, nil
}

// HasPostedFiscalInvoices indica si el contraparte comercial (o cualquiera de
// sus sub-contactos) tiene documentos fiscales dominicanos actualmente
// publicados. Un documento revertido a borrador no congela los campos.
func (r *InvoiceRepo) HasPostedFiscalInvoices(ctx context.Context, commercialPartnerID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM fiscal_invoices i
			JOIN partners p ON p.id = i.partner_id
			WHERE (p.id = $1 OR p.parent_id = $1)
			  AND i.state = 'posted'
			  AND i.country_code = $2
			  AND i.use_documents
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, commercialPartnerID, dgii.CountryCode).Scan(&exists); err != nil {
		return false, fmt.Errorf("has posted fiscal invoices: %w", err)
	}
	return exists, nil
}
