package entity

import "time"

// Partner representa un contraparte (cliente o proveedor). Los campos
// fiscales (Name, VAT, CountryCode) quedan inmutables cuando el contraparte
// tiene al menos un documento fiscal publicado; los sub-contactos
// (ParentID no vacío) están exentos del bloqueo.
type Partner struct {
	ID          string
	CompanyID   string
	ParentID    string // contacto padre; vacío = contraparte comercial
	Name        string
	VAT         string // RNC (9 dígitos) o cédula (11 dígitos)
	CountryCode string
	// TaxPayerType clasificación DGII derivada (ver dgii.TaxPayerType*).
	// Una clasificación fijada manualmente distinta de non_payer es
	// pegajosa: el clasificador no la sobreescribe.
	TaxPayerType string
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsContact indica si el partner es un sub-contacto de otro contraparte.
func (p *Partner) IsContact() bool { return p.ParentID != "" }
