package ncf

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
)

// FiscalAmounts desglose de montos ITBIS de un documento fiscal. Lo consumen
// los reportes fiscales (606/607) y la exportación de e-CF.
type FiscalAmounts struct {
	// ITBISAmount total de ITBIS repercutido.
	ITBISAmount decimal.Decimal `json:"itbis_amount"`
	// ITBISTaxableAmount monto gravado total (base de líneas con ITBIS efectivo).
	ITBISTaxableAmount decimal.Decimal `json:"itbis_taxable_amount"`
	// ITBISExemptAmount monto exento (base de líneas con algún impuesto a tasa cero).
	ITBISExemptAmount decimal.Decimal `json:"itbis_exempt_amount"`
	// CompanyInvoiceTotal total del documento en moneda de la compañía.
	CompanyInvoiceTotal decimal.Decimal `json:"company_invoice_total"`
	// InvoiceTotal total del documento en moneda del documento.
	InvoiceTotal decimal.Decimal `json:"invoice_total"`
}

// InvoiceAmounts calcula el desglose fiscal de un documento ya publicado.
// Cómputo puro sobre las líneas; no muta nada.
//
// companyCurrency selecciona el modo: en moneda de la compañía los montos se
// toman del balance contable y los documentos de compra se reportan
// negados; en moneda del documento se usa la base de línea sin negar.
// itbisGroup es el grupo de impuesto reconocido como ITBIS por la compañía;
// solo las líneas cuyo impuesto pertenece a ese grupo cuentan.
func InvoiceAmounts(inv *entity.FiscalInvoice, companyCurrencyCode, itbisGroup string, companyCurrency bool) FiscalAmounts {
	sign := decimal.NewFromInt(1)
	if companyCurrency && inv.IsPurchase() {
		sign = decimal.NewFromInt(-1)
	}
	lineAmount := func(l *entity.InvoiceLine) decimal.Decimal {
		if companyCurrency {
			return l.Balance
		}
		return l.PriceSubtotal
	}

	var out FiscalAmounts

	for i := range inv.Lines {
		l := &inv.Lines[i]

		if l.IsTaxLine {
			// Línea de impuesto: suma al total de ITBIS si pertenece al
			// grupo y su tasa es positiva.
			if l.TaxGroup == itbisGroup && l.TaxRate.IsPositive() {
				out.ITBISAmount = out.ITBISAmount.Add(lineAmount(l))
			}
			continue
		}

		// Línea de producto gravada con ITBIS.
		if !l.HasTaxGroup(itbisGroup) {
			continue
		}
		// Base gravada: solo cuenta cuando el impuesto tuvo efecto
		// (el total difiere del subtotal).
		if !l.PriceTotal.Equal(l.PriceSubtotal) {
			out.ITBISTaxableAmount = out.ITBISTaxableAmount.Add(lineAmount(l))
		}
		if l.HasZeroRateTax() {
			out.ITBISExemptAmount = out.ITBISExemptAmount.Add(lineAmount(l))
		}
	}

	out.ITBISAmount = sign.Mul(out.ITBISAmount)
	out.ITBISTaxableAmount = sign.Mul(out.ITBISTaxableAmount)
	out.ITBISExemptAmount = sign.Mul(out.ITBISExemptAmount)

	// Total del documento: base sin impuestos (absoluta) más las líneas de
	// impuesto con tasa positiva. Con moneda extranjera se usa el monto en
	// moneda del documento en valor absoluto.
	taxTotal := decimal.Zero
	sameCurrency := inv.CurrencyCode == companyCurrencyCode
	for i := range inv.Lines {
		l := &inv.Lines[i]
		if !l.IsTaxLine || !l.TaxRate.IsPositive() {
			continue
		}
		if sameCurrency {
			taxTotal = taxTotal.Add(l.Balance.Abs())
		} else {
			taxTotal = taxTotal.Add(l.AmountCurrency.Abs())
		}
	}
	out.CompanyInvoiceTotal = inv.AmountUntaxedSigned.Abs().Add(taxTotal)
	out.InvoiceTotal = inv.AmountUntaxed.Abs().Add(taxTotal)

	return out
}
