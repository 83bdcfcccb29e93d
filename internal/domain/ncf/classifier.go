package ncf

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
)

// PartnerIdentity son los campos de identidad que alimentan la clasificación.
// El clasificador solo se ejecuta cuando cambia alguno de ellos.
type PartnerIdentity struct {
	VAT         string
	Name        string
	CountryCode string // vacío = contexto de la compañía (DO)
	CurrentType string // clasificación vigente; pegajosa salvo non_payer
}

// ClassifierConfig configuración de la compañía que consume el clasificador.
type ClassifierConfig struct {
	// DefaultClientType decide la clasificación de cédulas (11 dígitos):
	// "fiscal" -> taxpayer, cualquier otro valor -> non_payer.
	DefaultClientType string
}

// Classification resultado del clasificador.
type Classification struct {
	TaxPayerType string
	// DerivedVAT identificador derivado del nombre cuando el VAT estaba
	// vacío y el nombre tiene forma de RNC o cédula; vacío si no aplica.
	DerivedVAT string
}

// Reglas de clasificación DGII, en orden de precedencia. Tabla explícita en
// lugar de condicionales anidados: el orden de las filas ES la regla (los
// chequeos por nombre van antes que los chequeos por prefijo del RNC).
//
//  1. País establecido distinto de DO            -> foreigner
//  2. Residente DO con identificador usable (RNC/cédula, o nombre como proxy):
//     a. 9 dígitos (forma de RNC):
//     - nombre contiene MINISTERIO              -> governmental
//     - nombre contiene IGLESIA o ZONA FRANCA   -> special
//     - empieza por 1                            -> taxpayer
//     - empieza por 4                            -> nonprofit
//     - resto                                    -> taxpayer
//     b. 11 caracteres (forma de cédula):
//     - numérica: según DefaultClientType        -> taxpayer | non_payer
//     - no numérica                              -> non_payer
//     c. otra longitud                            -> non_payer
//  3. Sin identificador y sin clasificación vigente -> non_payer
//  4. En cualquier otro caso se conserva la clasificación vigente.
//
// Las reglas 2 y 3 solo aplican cuando la clasificación vigente está vacía o
// es non_payer: una clasificación fiscal/especial fijada a mano es pegajosa.
// La regla 1 siempre aplica. Un partner sin país cae en las reglas de
// residente (el país vacío se asume contexto DO de la compañía).
func Classify(p PartnerIdentity, cfg ClassifierConfig) Classification {
	if p.CountryCode != "" && p.CountryCode != dgii.CountryCode {
		return Classification{TaxPayerType: dgii.TaxPayerTypeForeigner}
	}

	id := usableIdentifier(p)
	sticky := p.CurrentType != "" && p.CurrentType != dgii.TaxPayerTypeNonPayer

	switch {
	case id != "" && !sticky:
		return classifyResident(id, p, cfg)
	case p.CurrentType == "":
		return Classification{TaxPayerType: dgii.TaxPayerTypeNonPayer}
	default:
		return Classification{TaxPayerType: p.CurrentType}
	}
}

func classifyResident(id string, p PartnerIdentity, cfg ClassifierConfig) Classification {
	name := foldName(p.Name)

	switch {
	case isDigits(id) && len(id) == 9:
		out := Classification{DerivedVAT: derivedVAT(id, p)}
		switch {
		case strings.Contains(name, "MINISTERIO"):
			out.TaxPayerType = dgii.TaxPayerTypeGovernmental
		case strings.Contains(name, "IGLESIA") || strings.Contains(name, "ZONA FRANCA"):
			out.TaxPayerType = dgii.TaxPayerTypeSpecial
		case strings.HasPrefix(id, "4"):
			out.TaxPayerType = dgii.TaxPayerTypeNonprofit
		default:
			// incluye el prefijo "1" y cualquier otro RNC de 9 dígitos
			out.TaxPayerType = dgii.TaxPayerTypeTaxpayer
		}
		return out

	case len(id) == 11:
		if !isDigits(id) {
			return Classification{TaxPayerType: dgii.TaxPayerTypeNonPayer}
		}
		out := Classification{DerivedVAT: derivedVAT(id, p)}
		if cfg.DefaultClientType == dgii.ClientTypeFiscal {
			out.TaxPayerType = dgii.TaxPayerTypeTaxpayer
		} else {
			out.TaxPayerType = dgii.TaxPayerTypeNonPayer
		}
		return out

	default:
		return Classification{TaxPayerType: dgii.TaxPayerTypeNonPayer}
	}
}

// usableIdentifier devuelve el RNC/cédula o, en su ausencia, el nombre legal
// como proxy. Heurística deliberada del dominio: los RNC digitados en el
// campo nombre son un caso real en los datos.
func usableIdentifier(p PartnerIdentity) string {
	if v := strings.TrimSpace(p.VAT); v != "" {
		return v
	}
	return strings.TrimSpace(p.Name)
}

// derivedVAT informa el identificador derivado solo cuando el VAT está vacío.
func derivedVAT(id string, p PartnerIdentity) string {
	if strings.TrimSpace(p.VAT) == "" {
		return id
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// nameFolder quita diacríticos y lleva a mayúsculas, para que razones
// sociales acentuadas ("MINISTERIO DE EDUCACIÓN") casen con los patrones.
var nameFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldName(name string) string {
	folded, _, err := transform.String(nameFolder, name)
	if err != nil {
		folded = name
	}
	return strings.ToUpper(folded)
}
