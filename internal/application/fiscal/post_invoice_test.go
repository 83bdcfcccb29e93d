package fiscal_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fiscal-do-api/internal/application/dto"
	"github.com/jhoicas/fiscal-do-api/internal/application/fiscal"
	"github.com/jhoicas/fiscal-do-api/internal/domain"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
)

func newPostUC(s *memStore) *fiscal.PostUseCase {
	return fiscal.NewPostUseCase(&fakeTxRunner{s: s}, decimal.Zero, testLogger())
}

// ── Umbral de RNC obligatorio ─────────────────────────────────────────────────

func TestPost_NoContribuyenteSinRNCSobreElUmbral(t *testing.T) {
	s := seedStore()
	draftInvoice(s, "inv-big", func(inv *entity.FiscalInvoice) {
		inv.PartnerID = "p-final"
		inv.DocumentTypeID = "dt-b02"
		inv.DocumentNumber = "B0200000001"
		inv.AmountUntaxedSigned = decimal.NewFromInt(300000)
	})

	_, err := newPostUC(s).Post(context.Background(), "co-1", "inv-big")
	assert.ErrorIs(t, err, domain.ErrVATRequired,
		"consumidor final sin cédula con base de 300,000 DOP debe rechazarse")
	assert.Equal(t, entity.StateDraft, s.invoices["inv-big"].State,
		"el documento rechazado permanece en borrador")
}

func TestPost_VentaCreadaPorLaAPISobreElUmbralRechaza(t *testing.T) {
	// Flujo completo: el alta deriva la base con signo desde balances
	// crédito y la guarda del umbral aplica igual que con datos sembrados.
	s := seedStore()

	out, err := newInvoiceUC(s).Create(context.Background(), "co-1", dto.CreateInvoiceRequest{
		JournalID: "j-sale",
		PartnerID: "p-final",
		MoveType:  entity.MoveTypeOutInvoice,
		Lines: []dto.InvoiceLineRequest{
			{
				Name:          "Venta mayorista",
				PriceSubtotal: decimal.NewFromInt(300000),
				PriceTotal:    decimal.NewFromInt(354000),
				Balance:       decimal.NewFromInt(-300000),
				Taxes:         []dto.AppliedTaxInput{{Group: "ITBIS", Rate: decimal.NewFromInt(18)}},
			},
		},
	})
	require.NoError(t, err)
	s.invoices[out.ID].DocumentTypeID = "dt-b02"

	_, err = newPostUC(s).Post(context.Background(), "co-1", out.ID)
	assert.ErrorIs(t, err, domain.ErrVATRequired,
		"venta de 300,000 DOP a consumidor final sin cédula no debe publicarse")
	assert.Equal(t, entity.StateDraft, s.invoices[out.ID].State)
}

func TestPost_NoContribuyenteSinRNCBajoElUmbral(t *testing.T) {
	s := seedStore()
	draftInvoice(s, "inv-small", func(inv *entity.FiscalInvoice) {
		inv.PartnerID = "p-final"
		inv.DocumentTypeID = "dt-b02"
		inv.DocumentNumber = "B0200000001"
		inv.AmountUntaxedSigned = decimal.NewFromInt(100000)
	})

	out, err := newPostUC(s).Post(context.Background(), "co-1", "inv-small")
	require.NoError(t, err)
	assert.Equal(t, entity.StatePosted, out.State)
}

func TestPost_ContribuyenteConRNCSobreElUmbral(t *testing.T) {
	s := seedStore()
	draftInvoice(s, "inv-rnc", func(inv *entity.FiscalInvoice) {
		inv.DocumentTypeID = "dt-b01"
		inv.DocumentNumber = "B0100000001"
		inv.AmountUntaxedSigned = decimal.NewFromInt(500000)
	})

	out, err := newPostUC(s).Post(context.Background(), "co-1", "inv-rnc")
	require.NoError(t, err)
	assert.Equal(t, entity.StatePosted, out.State,
		"con RNC el umbral no aplica")
}

func TestPost_ExactamenteEnElUmbralRechaza(t *testing.T) {
	s := seedStore()
	draftInvoice(s, "inv-edge", func(inv *entity.FiscalInvoice) {
		inv.PartnerID = "p-final"
		inv.DocumentTypeID = "dt-b02"
		inv.DocumentNumber = "B0200000001"
		inv.AmountUntaxedSigned = decimal.NewFromInt(250000)
	})

	_, err := newPostUC(s).Post(context.Background(), "co-1", "inv-edge")
	assert.ErrorIs(t, err, domain.ErrVATRequired, "el umbral es inclusivo")
}

// ── Tipo de contribuyente ─────────────────────────────────────────────────────

func TestPost_SinTipoDeContribuyenteRechaza(t *testing.T) {
	s := seedStore()
	s.partners["p-nuevo"] = &entity.Partner{
		ID: "p-nuevo", CompanyID: "co-1", Name: "Cliente Sin Clasificar", CountryCode: "DO",
	}
	draftInvoice(s, "inv-nc", func(inv *entity.FiscalInvoice) {
		inv.PartnerID = "p-nuevo"
		inv.DocumentTypeID = "dt-b02"
		inv.DocumentNumber = "B0200000001"
	})

	_, err := newPostUC(s).Post(context.Background(), "co-1", "inv-nc")
	assert.ErrorIs(t, err, domain.ErrTaxPayerTypeRequired)
}

// ── Vencimiento de secuencia ──────────────────────────────────────────────────

func TestPost_CopiaElVencimientoDelDiario(t *testing.T) {
	s := seedStore()
	draftInvoice(s, "inv-exp", func(inv *entity.FiscalInvoice) {
		inv.DocumentTypeID = "dt-b01"
		inv.DocumentNumber = "B0100000001"
	})

	out, err := newPostUC(s).Post(context.Background(), "co-1", "inv-exp")
	require.NoError(t, err)
	require.NotNil(t, out.NCFExpirationDate)
	assert.Equal(t, *timePtr(2026, 12, 31), *out.NCFExpirationDate,
		"el vencimiento viene de la configuración del diario para el tipo")
	assert.Equal(t, *timePtr(2026, 12, 31), *s.invoices["inv-exp"].NCFExpirationDate)
}

// ── Asignación automática al publicar ─────────────────────────────────────────

func TestPost_AsignaNCFSiFaltaba(t *testing.T) {
	s := seedStore()
	draftInvoice(s, "inv-auto", func(inv *entity.FiscalInvoice) {
		inv.DocumentTypeID = "dt-b01"
	})

	out, err := newPostUC(s).Post(context.Background(), "co-1", "inv-auto")
	require.NoError(t, err)
	assert.Equal(t, "B0100000001", out.DocumentNumber,
		"publicar sin NCF dispara la auto-secuencia en la misma transacción")
	assert.True(t, out.PostedBefore)
}

// ── Fuera del régimen fiscal ──────────────────────────────────────────────────

func TestPost_DocumentoNoFiscalPublicaSinGuardas(t *testing.T) {
	s := seedStore()
	s.partners["p-ext"] = &entity.Partner{
		ID: "p-ext", CompanyID: "co-1", Name: "Cliente Exterior", CountryCode: "US",
	}
	draftInvoice(s, "inv-libre", func(inv *entity.FiscalInvoice) {
		inv.PartnerID = "p-ext"
		inv.UseDocuments = false
		inv.AmountUntaxedSigned = decimal.NewFromInt(900000)
	})

	out, err := newPostUC(s).Post(context.Background(), "co-1", "inv-libre")
	require.NoError(t, err)
	assert.Equal(t, entity.StatePosted, out.State,
		"sin documentos legales no aplican las guardas dominicanas")
	assert.Nil(t, out.NCFExpirationDate)
}

// ── Guardas de estado ─────────────────────────────────────────────────────────

func TestPost_YaPublicadoRechaza(t *testing.T) {
	s := seedStore()
	draftInvoice(s, "inv-posted", func(inv *entity.FiscalInvoice) {
		inv.State = entity.StatePosted
	})

	_, err := newPostUC(s).Post(context.Background(), "co-1", "inv-posted")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPost_DocumentoInexistente(t *testing.T) {
	s := seedStore()

	_, err := newPostUC(s).Post(context.Background(), "co-1", "inv-nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
