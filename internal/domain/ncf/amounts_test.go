package ncf_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/ncf"
)

const itbisGroup = "ITBIS"

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// factura de venta: una línea gravada al 18%, una exenta, una fuera del grupo.
func saleInvoiceFixture() *entity.FiscalInvoice {
	return &entity.FiscalInvoice{
		MoveType:            entity.MoveTypeOutInvoice,
		CurrencyCode:        "DOP",
		AmountUntaxed:       dec("1500"),
		AmountUntaxedSigned: dec("1500"),
		Lines: []entity.InvoiceLine{
			{
				Name:          "producto gravado",
				Taxes:         []entity.AppliedTax{{Group: itbisGroup, Rate: dec("18")}},
				PriceSubtotal: dec("1000"),
				PriceTotal:    dec("1180"),
				Balance:       dec("-1000"),
			},
			{
				Name:          "producto exento",
				Taxes:         []entity.AppliedTax{{Group: itbisGroup, Rate: decimal.Zero}},
				PriceSubtotal: dec("400"),
				PriceTotal:    dec("400"),
				Balance:       dec("-400"),
			},
			{
				Name:          "producto con otro impuesto",
				Taxes:         []entity.AppliedTax{{Group: "PROPINA", Rate: dec("10")}},
				PriceSubtotal: dec("100"),
				PriceTotal:    dec("110"),
				Balance:       dec("-100"),
			},
			{
				Name:          "línea de ITBIS",
				IsTaxLine:     true,
				TaxGroup:      itbisGroup,
				TaxRate:       dec("18"),
				PriceSubtotal: dec("180"),
				Balance:       dec("-180"),
			},
			{
				Name:          "línea de propina legal",
				IsTaxLine:     true,
				TaxGroup:      "PROPINA",
				TaxRate:       dec("10"),
				PriceSubtotal: dec("10"),
				Balance:       dec("-10"),
			},
		},
	}
}

func TestInvoiceAmounts_ModoMonedaDelDocumento(t *testing.T) {
	got := ncf.InvoiceAmounts(saleInvoiceFixture(), "DOP", itbisGroup, false)

	assert.True(t, got.ITBISAmount.Equal(dec("180")), "ITBIS: solo la línea de impuesto del grupo")
	assert.True(t, got.ITBISTaxableAmount.Equal(dec("1000")), "base gravada: solo la línea con ITBIS efectivo")
	assert.True(t, got.ITBISExemptAmount.Equal(dec("400")), "monto exento: línea con tasa cero")
	// total = base sin impuestos + líneas de impuesto con tasa positiva (180 ITBIS + 10 propina)
	assert.True(t, got.InvoiceTotal.Equal(dec("1690")), "total: 1500 + 180 + 10, obtuvo %s", got.InvoiceTotal)
}

func TestInvoiceAmounts_LineaSinEfectoDeImpuesto(t *testing.T) {
	// price_total == price_subtotal: no suma a la base gravada, pero el
	// ITBIS repercutido del documento sí cuenta.
	inv := &entity.FiscalInvoice{
		MoveType:     entity.MoveTypeOutInvoice,
		CurrencyCode: "DOP",
		Lines: []entity.InvoiceLine{
			{
				Taxes:         []entity.AppliedTax{{Group: itbisGroup, Rate: dec("18")}},
				PriceSubtotal: dec("500"),
				PriceTotal:    dec("500"),
			},
			{IsTaxLine: true, TaxGroup: itbisGroup, TaxRate: dec("18"), PriceSubtotal: dec("90"), Balance: dec("-90")},
		},
	}
	got := ncf.InvoiceAmounts(inv, "DOP", itbisGroup, false)
	assert.True(t, got.ITBISTaxableAmount.IsZero(), "sin efecto de impuesto no hay base gravada")
	assert.True(t, got.ITBISAmount.Equal(dec("90")), "el ITBIS repercutido cuenta igual")
}

func TestInvoiceAmounts_ModoMonedaCompaniaNiegaCompras(t *testing.T) {
	inv := saleInvoiceFixture()
	inv.MoveType = entity.MoveTypeInInvoice
	inv.AmountUntaxedSigned = dec("-1500")

	got := ncf.InvoiceAmounts(inv, "DOP", itbisGroup, true)
	assert.True(t, got.ITBISAmount.Equal(dec("180")), "balance -180 negado: %s", got.ITBISAmount)
	assert.True(t, got.ITBISTaxableAmount.Equal(dec("1000")))
	assert.True(t, got.ITBISExemptAmount.Equal(dec("400")))
	assert.True(t, got.CompanyInvoiceTotal.Equal(dec("1690")), "el total usa valor absoluto de la base")
}

func TestInvoiceAmounts_ModoMonedaDocumentoNoNiega(t *testing.T) {
	inv := saleInvoiceFixture()
	inv.MoveType = entity.MoveTypeInRefund

	got := ncf.InvoiceAmounts(inv, "DOP", itbisGroup, false)
	assert.True(t, got.ITBISTaxableAmount.Equal(dec("1000")),
		"el modo moneda del documento nunca niega los montos")
}

func TestInvoiceAmounts_MonedaExtranjeraUsaAmountCurrency(t *testing.T) {
	inv := &entity.FiscalInvoice{
		MoveType:            entity.MoveTypeOutInvoice,
		CurrencyCode:        "USD",
		AmountUntaxed:       dec("100"),
		AmountUntaxedSigned: dec("5900"), // 100 USD a 59 DOP
		Lines: []entity.InvoiceLine{
			{
				Taxes:         []entity.AppliedTax{{Group: itbisGroup, Rate: dec("18")}},
				PriceSubtotal: dec("100"),
				PriceTotal:    dec("118"),
				Balance:       dec("-5900"),
			},
			{
				IsTaxLine:      true,
				TaxGroup:       itbisGroup,
				TaxRate:        dec("18"),
				PriceSubtotal:  dec("18"),
				Balance:        dec("-1062"),
				AmountCurrency: dec("-18"),
			},
		},
	}
	got := ncf.InvoiceAmounts(inv, "DOP", itbisGroup, false)
	// con moneda distinta a la de la compañía, el total suma |amount_currency|
	assert.True(t, got.InvoiceTotal.Equal(dec("118")), "total en USD: 100 + 18, obtuvo %s", got.InvoiceTotal)
	assert.True(t, got.CompanyInvoiceTotal.Equal(dec("5918")), "total compañía: |5900| + 18")
}
