package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento (dirección de la transacción).
const (
	MoveTypeOutInvoice = "out_invoice" // factura de venta
	MoveTypeOutRefund  = "out_refund"  // nota de crédito de venta
	MoveTypeInInvoice  = "in_invoice"  // factura de compra
	MoveTypeInRefund   = "in_refund"   // nota de crédito de compra
)

// Estados del ciclo de vida del documento.
const (
	StateDraft  = "draft"
	StatePosted = "posted"
	StateCancel = "cancel"
)

// FiscalInvoice representa un documento tipo factura con seguimiento de
// comprobante fiscal (NCF). Una vez publicado, el número de documento y los
// campos fiscales del contraparte quedan inmutables.
type FiscalInvoice struct {
	ID                string
	CompanyID         string
	JournalID         string
	PartnerID         string
	MoveType          string // ver constantes MoveType*
	CountryCode       string
	UseDocuments      bool   // el diario lleva documentos legales
	DocumentTypeID    string // tipo de documento legal elegido
	DocumentNumber    string // NCF asignado
	ManualNumber      bool   // el número lo digita el usuario (no auto-secuenciado)
	NCFExpirationDate *time.Time
	CurrencyCode      string
	State             string // draft, posted, cancel
	PostedBefore      bool   // fue publicado alguna vez (aunque hoy esté revertido)
	ReversedEntryID   string // documento original cuando esto es una reversión
	Date              time.Time

	AmountUntaxed       decimal.Decimal // base sin impuestos en moneda del documento
	AmountUntaxedSigned decimal.Decimal // base sin impuestos, moneda compañía: positiva en ventas, negativa en compras

	Lines []InvoiceLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRefund indica si el documento es una reversión (nota de crédito).
func (m *FiscalInvoice) IsRefund() bool {
	return m.MoveType == MoveTypeOutRefund || m.MoveType == MoveTypeInRefund
}

// IsPurchase indica si el documento es del lado de compras.
func (m *FiscalInvoice) IsPurchase() bool {
	return m.MoveType == MoveTypeInInvoice || m.MoveType == MoveTypeInRefund
}

// AppliedTax impuesto aplicado a una línea de producto.
type AppliedTax struct {
	Group string          // grupo del impuesto (ej: "ITBIS")
	Rate  decimal.Decimal // tasa porcentual; cero = exento
}

// InvoiceLine es una línea contable del documento. Las líneas de producto
// llevan los impuestos aplicados; las líneas de impuesto (IsTaxLine) llevan
// el grupo y la tasa del impuesto que repercuten.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	Name      string

	IsTaxLine bool
	TaxGroup  string          // grupo del impuesto repercutido (solo líneas de impuesto)
	TaxRate   decimal.Decimal // tasa del impuesto repercutido (solo líneas de impuesto)

	Taxes []AppliedTax // impuestos aplicados (solo líneas de producto)

	Quantity       decimal.Decimal
	PriceUnit      decimal.Decimal
	PriceSubtotal  decimal.Decimal // base sin impuestos, moneda del documento
	PriceTotal     decimal.Decimal // total con impuestos, moneda del documento
	Balance        decimal.Decimal // débito (+) / crédito (-), moneda de la compañía
	AmountCurrency decimal.Decimal // monto en moneda del documento
}

// HasTaxGroup indica si la línea de producto lleva algún impuesto del grupo.
func (l *InvoiceLine) HasTaxGroup(group string) bool {
	for _, t := range l.Taxes {
		if t.Group == group {
			return true
		}
	}
	return false
}

// HasZeroRateTax indica si la línea de producto lleva algún impuesto a tasa cero.
func (l *InvoiceLine) HasZeroRateTax() bool {
	for _, t := range l.Taxes {
		if t.Rate.IsZero() {
			return true
		}
	}
	return false
}
