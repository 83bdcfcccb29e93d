// Package dgii contiene el catálogo de referencia de la DGII (República
// Dominicana): tipos de NCF, prefijos de comprobantes y la URL pública de
// consulta. Es un catálogo puro, sin estado.
package dgii

import "strings"

// CountryCode código ISO del país de la localización.
const CountryCode = "DO"

// Tipos de NCF (Número de Comprobante Fiscal). Enumeración abierta: un tipo
// de documento sin NCFType actúa como comodín en el resolver.
const (
	NCFTypeFiscal       = "fiscal"       // B01 crédito fiscal
	NCFTypeConsumer     = "consumer"     // B02 consumidor final
	NCFTypeSpecial      = "special"      // B14 regímenes especiales
	NCFTypeGovernmental = "governmental" // B15 gubernamental
	NCFTypeExport       = "export"       // B16 exportaciones
	NCFTypeInformal     = "informal"     // B11 proveedores informales
	NCFTypeMinor        = "minor"        // B13 gastos menores
	NCFTypeExterior     = "exterior"     // B17 pagos al exterior

	// Variantes electrónicas (e-CF). El prefijo "e-" determina el ancho
	// de la secuencia (10 dígitos en lugar de 8).
	NCFTypeEFiscal       = "e-fiscal"       // E31
	NCFTypeEConsumer     = "e-consumer"     // E32
	NCFTypeESpecial      = "e-special"      // E44
	NCFTypeEGovernmental = "e-governmental" // E45
	NCFTypeEExport       = "e-export"       // E46
	NCFTypeEInformal     = "e-informal"     // E41
	NCFTypeEMinor        = "e-minor"        // E43
	NCFTypeEExterior     = "e-exterior"     // E47
)

// Tipos de contribuyente según clasificación DGII.
const (
	TaxPayerTypeTaxpayer     = "taxpayer"     // contribuyente con crédito fiscal
	TaxPayerTypeNonPayer     = "non_payer"    // no contribuyente
	TaxPayerTypeNonprofit    = "nonprofit"    // entidad sin fines de lucro
	TaxPayerTypeSpecial      = "special"      // régimen especial de tributación
	TaxPayerTypeGovernmental = "governmental" // entidad gubernamental
	TaxPayerTypeForeigner    = "foreigner"    // extranjero
)

// Tipos de cliente por defecto de la compañía (para clasificar cédulas).
const (
	ClientTypeFiscal    = "fiscal"
	ClientTypeNonFiscal = "non_fiscal"
)

// vendorNCFTypes son los tipos de NCF emitidos por el propio comprador en
// operaciones de compra (el número lo genera la compañía, no el proveedor).
var vendorNCFTypes = map[string]struct{}{
	NCFTypeMinor:     {},
	NCFTypeEMinor:    {},
	NCFTypeInformal:  {},
	NCFTypeEInformal: {},
	NCFTypeExterior:  {},
	NCFTypeEExterior: {},
}

// IsVendorNCFType indica si el tipo de NCF corresponde a comprobantes de
// compra auto-emitidos (gastos menores, proveedores informales, exterior).
func IsVendorNCFType(ncfType string) bool {
	_, ok := vendorNCFTypes[ncfType]
	return ok
}

// IsElectronic indica si el tipo de NCF es un e-CF (secuencia de 10 dígitos).
func IsElectronic(ncfType string) bool {
	return strings.HasPrefix(ncfType, "e-")
}

// Electronic devuelve la variante e-CF de un tipo de NCF físico.
func Electronic(ncfType string) string {
	if ncfType == "" || IsElectronic(ncfType) {
		return ncfType
	}
	return "e-" + ncfType
}

// URL pública de consulta de comprobantes (QR de la representación impresa).
const ConsultaURL = "https://dgii.gov.do/app/ConsultaNCF"

// VATMandatoryThreshold monto sin impuestos (DOP) a partir del cual el RNC o
// cédula del contraparte es obligatorio para contrapartes no contribuyentes
// (Norma General 06-2018).
const VATMandatoryThreshold = 250000
