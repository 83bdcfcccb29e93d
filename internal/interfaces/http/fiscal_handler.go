package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fiscal-do-api/internal/application/dto"
	"github.com/jhoicas/fiscal-do-api/internal/application/fiscal"
	"github.com/jhoicas/fiscal-do-api/internal/domain"
)

// FiscalHandler maneja las peticiones HTTP de documentos fiscales (protegido).
type FiscalHandler struct {
	invoiceUC   *fiscal.InvoiceUseCase
	resolver    *fiscal.DocumentTypeResolver
	numberingUC *fiscal.NumberingUseCase
	postUC      *fiscal.PostUseCase
	exportUC    *fiscal.ExportUseCase
}

// NewFiscalHandler construye el handler.
func NewFiscalHandler(
	invoiceUC *fiscal.InvoiceUseCase,
	resolver *fiscal.DocumentTypeResolver,
	numberingUC *fiscal.NumberingUseCase,
	postUC *fiscal.PostUseCase,
	exportUC *fiscal.ExportUseCase,
) *FiscalHandler {
	return &FiscalHandler{
		invoiceUC:   invoiceUC,
		resolver:    resolver,
		numberingUC: numberingUC,
		postUC:      postUC,
		exportUC:    exportUC,
	}
}

// Create POST /api/invoices
func (h *FiscalHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.invoiceUC.Create(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "journal_id, partner_id y lines son requeridos"})
		}
		return fiscalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/invoices/:id
func (h *FiscalHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.invoiceUC.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return fiscalError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/invoices/:id
func (h *FiscalHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.invoiceUC.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return fiscalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DocumentTypes GET /api/invoices/:id/document-types
func (h *FiscalHandler) DocumentTypes(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	types, err := h.resolver.EligibleDocumentTypes(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return fiscalError(c, err)
	}
	out := make([]dto.DocumentTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.DocumentTypeResponse{
			ID:            t.ID,
			Name:          t.Name,
			DocCodePrefix: t.DocCodePrefix,
			Code:          t.Code,
			InternalType:  t.InternalType,
			NCFType:       t.NCFType,
		})
	}
	return c.JSON(out)
}

// AssignNumber POST /api/invoices/:id/assign-number
func (h *FiscalHandler) AssignNumber(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AssignNumberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DocumentTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "document_type_id es requerido"})
	}
	inv, err := h.numberingUC.AssignNumber(c.Context(), companyID, c.Params("id"), in.DocumentTypeID, in.Number)
	if err != nil {
		return fiscalError(c, err)
	}
	return c.JSON(dto.AssignNumberResponse{
		DocumentNumber: inv.DocumentNumber,
		ManualNumber:   inv.ManualNumber,
	})
}

// Post POST /api/invoices/:id/post
func (h *FiscalHandler) Post(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	inv, err := h.postUC.Post(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return fiscalError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":                  inv.ID,
		"state":               inv.State,
		"document_number":     inv.DocumentNumber,
		"ncf_expiration_date": inv.NCFExpirationDate,
	})
}

// FiscalAmounts GET /api/invoices/:id/fiscal-amounts?company_currency=true
func (h *FiscalHandler) FiscalAmounts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	companyCurrency := c.QueryBool("company_currency", false)
	out, err := h.invoiceUC.Amounts(c.Context(), companyID, c.Params("id"), companyCurrency)
	if err != nil {
		return fiscalError(c, err)
	}
	return c.JSON(out)
}

// ExportECF GET /api/invoices/:id/ecf
func (h *FiscalHandler) ExportECF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	doc, err := h.exportUC.ExportECF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return fiscalError(c, err)
	}
	return c.JSON(fiber.Map{
		"xml":           string(doc.XML),
		"security_code": doc.SecurityCode,
		"qr_url":        doc.QRURL,
	})
}

// PDF GET /api/invoices/:id/pdf
func (h *FiscalHandler) PDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pdfBytes, err := h.exportUC.GeneratePDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return fiscalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// ReportName GET /api/invoices/:id/report-name
func (h *FiscalHandler) ReportName(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.invoiceUC.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return fiscalError(c, err)
	}
	return c.JSON(fiber.Map{"report_name": out.ReportName})
}

// fiscalError traduce los errores de dominio a códigos HTTP: validación
// corregible 422, bloqueos por historial 403, no encontrado 404, estado 409.
func fiscalError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrVATRequired),
		errors.Is(err, domain.ErrTaxPayerTypeRequired),
		errors.Is(err, domain.ErrManualNumberRequired),
		errors.Is(err, domain.ErrInvalidDocumentNumber),
		errors.Is(err, domain.ErrDocumentTypeNotAllowed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "FISCAL_VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrFiscalFieldLocked),
		errors.Is(err, domain.ErrPostedFiscalInvoice),
		errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FISCAL_LOCKED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
