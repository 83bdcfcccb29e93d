package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest registro de un documento fiscal en borrador (los
// documentos los origina el sistema contable anfitrión y se sincronizan aquí).
type CreateInvoiceRequest struct {
	JournalID       string               `json:"journal_id" validate:"required,uuid"`
	PartnerID       string               `json:"partner_id" validate:"required,uuid"`
	MoveType        string               `json:"move_type" validate:"required,oneof=out_invoice out_refund in_invoice in_refund"`
	CurrencyCode    string               `json:"currency_code" validate:"omitempty,len=3"`
	Date            string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ReversedEntryID string               `json:"reversed_entry_id" validate:"omitempty,uuid"`
	Lines           []InvoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// InvoiceLineRequest línea contable del documento.
type InvoiceLineRequest struct {
	Name           string            `json:"name"`
	IsTaxLine      bool              `json:"is_tax_line"`
	TaxGroup       string            `json:"tax_group"`
	TaxRate        decimal.Decimal   `json:"tax_rate"`
	Taxes          []AppliedTaxInput `json:"taxes"`
	Quantity       decimal.Decimal   `json:"quantity"`
	PriceUnit      decimal.Decimal   `json:"price_unit"`
	PriceSubtotal  decimal.Decimal   `json:"price_subtotal"`
	PriceTotal     decimal.Decimal   `json:"price_total"`
	Balance        decimal.Decimal   `json:"balance"` // débito (+) / crédito (-), moneda de la compañía
	AmountCurrency decimal.Decimal   `json:"amount_currency"`
}

// AppliedTaxInput impuesto aplicado a una línea de producto.
type AppliedTaxInput struct {
	Group string          `json:"group"`
	Rate  decimal.Decimal `json:"rate"`
}

// InvoiceResponse salida de un documento fiscal.
type InvoiceResponse struct {
	ID                string     `json:"id"`
	CompanyID         string     `json:"company_id"`
	JournalID         string     `json:"journal_id"`
	PartnerID         string     `json:"partner_id"`
	MoveType          string     `json:"move_type"`
	State             string     `json:"state"`
	DocumentTypeID    string     `json:"document_type_id,omitempty"`
	DocumentNumber    string     `json:"document_number,omitempty"`
	ManualNumber      bool       `json:"manual_number"`
	NCFExpirationDate *time.Time `json:"ncf_expiration_date,omitempty"`
	ReportName        string     `json:"report_name"`
}

// DocumentTypeResponse tipo de documento elegible para una factura.
type DocumentTypeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DocCodePrefix string `json:"doc_code_prefix"`
	Code          string `json:"code"`
	InternalType  string `json:"internal_type"`
	NCFType       string `json:"ncf_type,omitempty"`
}

// AssignNumberRequest asignación de NCF. Number solo aplica cuando el
// documento requiere numeración manual.
type AssignNumberRequest struct {
	DocumentTypeID string `json:"document_type_id" validate:"required,uuid"`
	Number         string `json:"number" validate:"omitempty,max=19"`
}

// AssignNumberResponse NCF asignado.
type AssignNumberResponse struct {
	DocumentNumber string `json:"document_number"`
	ManualNumber   bool   `json:"manual_number"`
}

// FiscalAmountsResponse desglose ITBIS de un documento (reportes y e-CF).
type FiscalAmountsResponse struct {
	ITBISAmount         decimal.Decimal `json:"itbis_amount"`
	ITBISTaxableAmount  decimal.Decimal `json:"itbis_taxable_amount"`
	ITBISExemptAmount   decimal.Decimal `json:"itbis_exempt_amount"`
	CompanyInvoiceTotal decimal.Decimal `json:"company_invoice_total"`
	InvoiceTotal        decimal.Decimal `json:"invoice_total"`
}
