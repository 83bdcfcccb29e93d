package entity

import "time"

// Company representa una compañía (enfoque República Dominicana).
type Company struct {
	ID          string
	Name        string
	RNC         string // Registro Nacional del Contribuyente (9 dígitos)
	CountryCode string
	// DefaultClientType tipo de cliente por defecto: decide si una cédula
	// (11 dígitos) clasifica como taxpayer o non_payer.
	DefaultClientType string // fiscal, non_fiscal
	// ECFIssuer al activarse, la compañía emite e-CF y la emisión de NCF
	// físicos queda deshabilitada.
	ECFIssuer    bool
	CurrencyCode string // moneda contable de la compañía (DOP)
	ITBISGroup   string // grupo de impuesto reconocido como ITBIS
	Address      string
	Phone        string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
