package entity

import (
	"time"

	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
)

// Tipos de diario.
const (
	JournalTypeSale     = "sale"
	JournalTypePurchase = "purchase"
)

// JournalDocumentType autorización de un tipo de documento en un diario,
// con su fecha de vencimiento de secuencia NCF.
type JournalDocumentType struct {
	DocumentTypeID    string
	NCFExpirationDate *time.Time
}

// Journal representa un diario contable. Un diario autoriza un subconjunto
// de tipos de documento legal y puede restringir los códigos internos.
type Journal struct {
	ID            string
	CompanyID     string
	Name          string
	Type          string // sale, purchase
	UseDocuments  bool
	DocumentCodes []string              // códigos permitidos; vacío = sin restricción
	DocumentTypes []JournalDocumentType // tipos autorizados con vigencia
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExpirationFor devuelve la fecha de vencimiento configurada en el diario
// para el tipo de documento, o nil si no está autorizado.
func (j *Journal) ExpirationFor(documentTypeID string) *time.Time {
	for _, dt := range j.DocumentTypes {
		if dt.DocumentTypeID == documentTypeID {
			return dt.NCFExpirationDate
		}
	}
	return nil
}

// Tipos de NCF emitibles por tipo de contribuyente. La fila depende de la
// dirección del diario: en ventas el NCF refleja quién recibe el comprobante;
// en compras, qué comprobante puede auto-emitir o registrar la compañía.
var saleNCFTypesByPayer = map[string][]string{
	dgii.TaxPayerTypeTaxpayer:     {dgii.NCFTypeFiscal},
	dgii.TaxPayerTypeNonPayer:     {dgii.NCFTypeConsumer},
	dgii.TaxPayerTypeNonprofit:    {dgii.NCFTypeSpecial},
	dgii.TaxPayerTypeSpecial:      {dgii.NCFTypeSpecial},
	dgii.TaxPayerTypeGovernmental: {dgii.NCFTypeGovernmental},
	dgii.TaxPayerTypeForeigner:    {dgii.NCFTypeConsumer, dgii.NCFTypeExport},
}

var purchaseNCFTypesByPayer = map[string][]string{
	dgii.TaxPayerTypeTaxpayer:     {dgii.NCFTypeFiscal},
	dgii.TaxPayerTypeNonPayer:     {dgii.NCFTypeInformal, dgii.NCFTypeMinor},
	dgii.TaxPayerTypeNonprofit:    {dgii.NCFTypeSpecial},
	dgii.TaxPayerTypeSpecial:      {dgii.NCFTypeSpecial},
	dgii.TaxPayerTypeGovernmental: {dgii.NCFTypeFiscal},
	dgii.TaxPayerTypeForeigner:    {dgii.NCFTypeExterior},
}

// NCFTypes devuelve los tipos de NCF emitibles en este diario para un
// contraparte con el tipo de contribuyente dado. Cuando la compañía es
// emisora de e-CF se devuelven las variantes electrónicas.
func (j *Journal) NCFTypes(payerType string, ecfIssuer bool) []string {
	table := saleNCFTypesByPayer
	if j.Type == JournalTypePurchase {
		table = purchaseNCFTypesByPayer
	}
	types, ok := table[payerType]
	if !ok {
		return nil
	}
	if !ecfIssuer {
		return types
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = dgii.Electronic(t)
	}
	return out
}

// AllowsCode indica si el diario permite el código interno del tipo de
// documento. Sin restricción configurada, todos los códigos pasan.
func (j *Journal) AllowsCode(code string) bool {
	if len(j.DocumentCodes) == 0 {
		return true
	}
	for _, c := range j.DocumentCodes {
		if c == code {
			return true
		}
	}
	return false
}
