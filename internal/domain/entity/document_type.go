package entity

import "github.com/jhoicas/fiscal-do-api/pkg/dgii"

// Tipos internos de documento (clasificación contable del comprobante).
const (
	InternalTypeInvoice    = "invoice"
	InternalTypeCreditNote = "credit_note"
	InternalTypeDebitNote  = "debit_note"
)

// DocumentType representa un tipo de documento legal (comprobante fiscal).
// Varias facturas referencian un tipo; un diario autoriza un subconjunto.
type DocumentType struct {
	ID            string
	Name          string
	DocCodePrefix string // prefijo del NCF (ej: "B01", "E31")
	Code          string // código interno del catálogo
	InternalType  string // invoice, credit_note, debit_note
	NCFType       string // ver constantes dgii.NCFType*; vacío = comodín
	CountryCode   string
}

// IsElectronic indica si el tipo emite e-CF (secuencia de 10 dígitos).
func (d *DocumentType) IsElectronic() bool {
	return dgii.IsElectronic(d.NCFType)
}

// IsVendorType indica si el tipo corresponde a comprobantes de compra
// auto-emitidos por la compañía (gastos menores, informales, exterior).
func (d *DocumentType) IsVendorType() bool {
	return dgii.IsVendorNCFType(d.NCFType)
}
