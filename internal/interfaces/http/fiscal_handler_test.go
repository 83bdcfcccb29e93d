package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fiscal-do-api/internal/application/dto"
	"github.com/jhoicas/fiscal-do-api/internal/domain"
)

// errApp monta una ruta que responde con el error dado ya mapeado.
func errApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiscalError(c, err)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App) (int, dto.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestFiscalError_MapeoDeErroresDeDominio(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"RNC obligatorio", domain.ErrVATRequired, fiber.StatusUnprocessableEntity, "FISCAL_VALIDATION"},
		{"tipo de contribuyente", domain.ErrTaxPayerTypeRequired, fiber.StatusUnprocessableEntity, "FISCAL_VALIDATION"},
		{"NCF manual requerido", domain.ErrManualNumberRequired, fiber.StatusUnprocessableEntity, "FISCAL_VALIDATION"},
		{"NCF inválido", domain.ErrInvalidDocumentNumber, fiber.StatusUnprocessableEntity, "FISCAL_VALIDATION"},
		{"tipo no permitido", domain.ErrDocumentTypeNotAllowed, fiber.StatusUnprocessableEntity, "FISCAL_VALIDATION"},
		{"campos congelados", domain.ErrFiscalFieldLocked, fiber.StatusForbidden, "FISCAL_LOCKED"},
		{"factura fiscal publicada", domain.ErrPostedFiscalInvoice, fiber.StatusForbidden, "FISCAL_LOCKED"},
		{"acceso denegado", domain.ErrForbidden, fiber.StatusForbidden, "FISCAL_LOCKED"},
		{"conflicto de estado", domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"error interno", errors.New("se cayó la base"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, out := doGet(t, errApp(tc.err))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, out.Code)
		})
	}
}

func TestFiscalError_ConservaElWrapping(t *testing.T) {
	// Un error envuelto con %w debe mapear por el sentinel interno.
	wrapped := errors.Join(errors.New("contexto"), domain.ErrVATRequired)
	status, out := doGet(t, errApp(wrapped))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "FISCAL_VALIDATION", out.Code)
	assert.NotEmpty(t, out.Message)
}
