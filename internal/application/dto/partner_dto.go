package dto

// CreatePartnerRequest alta de un contraparte.
type CreatePartnerRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	VAT         string `json:"vat" validate:"omitempty,max=20"`
	CountryCode string `json:"country_code" validate:"omitempty,len=2"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
}

// UpdatePartnerRequest cambios sobre un contraparte. Punteros nil = campo
// sin tocar; los campos fiscales se rechazan si el partner está congelado.
type UpdatePartnerRequest struct {
	Name         *string `json:"name"`
	VAT          *string `json:"vat"`
	CountryCode  *string `json:"country_code"`
	TaxPayerType *string `json:"tax_payer_type"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
}

// PartnerResponse salida de un contraparte.
type PartnerResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	ParentID     string `json:"parent_id,omitempty"`
	Name         string `json:"name"`
	VAT          string `json:"vat,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
	TaxPayerType string `json:"tax_payer_type,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}
