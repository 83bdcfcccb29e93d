package ncf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/ncf"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
)

func fiscalType() *entity.DocumentType {
	return &entity.DocumentType{DocCodePrefix: "B01", NCFType: dgii.NCFTypeFiscal}
}

func eFiscalType() *entity.DocumentType {
	return &entity.DocumentType{DocCodePrefix: "E31", NCFType: dgii.NCFTypeEFiscal}
}

// ── Secuencia inicial ─────────────────────────────────────────────────────────

func TestStartingSequence_NCFFisicoOchoDigitos(t *testing.T) {
	assert.Equal(t, "B0100000000", ncf.StartingSequence(fiscalType()),
		"un NCF físico debe iniciar con sufijo de 8 ceros")
}

func TestStartingSequence_ECFDiezDigitos(t *testing.T) {
	assert.Equal(t, "E310000000000", ncf.StartingSequence(eFiscalType()),
		"un e-CF debe iniciar con sufijo de 10 ceros")
}

// ── Parseo y formato ──────────────────────────────────────────────────────────

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name      string
		formatted string
		prefix    string
		number    int64
		width     int
	}{
		{"ncf físico", "B0100000042", "B01", 42, 8},
		{"sin dígitos finales", "B01-SERIE", "B01-SERIE", 0, 0},
		{"vacío", "", "", 0, 0},
		{"solo dígitos toma máximo 8", "123456789012", "1234", 56789012, 8},
		// En los e-CF los dos primeros dígitos de la corrida de 10 se
		// absorben en el prefijo: el ancho sigue a lo parseado.
		{"e-cf", "E310000000042", "E3100", 42, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seq := ncf.ParseSequence(tc.formatted)
			assert.Equal(t, tc.prefix, seq.Prefix)
			assert.Equal(t, tc.number, seq.Number)
			assert.Equal(t, tc.width, seq.Width)
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	// Parsear y reformatear sin cambiar el valor debe reproducir el número.
	for _, formatted := range []string{"B0100000042", "B0200001000", "E310000000042", "B0399999999"} {
		seq := ncf.ParseSequence(formatted)
		assert.Equal(t, formatted, seq.Format(),
			"el round-trip parse/format debe ser exacto para %q", formatted)
	}
}

// ── Siguiente número ──────────────────────────────────────────────────────────

func TestNextNumber_IncrementaSoloElSufijo(t *testing.T) {
	next := ncf.NextNumber("B0100000042", fiscalType())
	assert.Equal(t, "B0100000043", next, "solo debe cambiar la parte numérica")
}

func TestNextNumber_SinPrevioParteDeLaSecuenciaInicial(t *testing.T) {
	require.Equal(t, "B0100000001", ncf.NextNumber("", fiscalType()),
		"el primer número emitido es la secuencia inicial + 1")
	require.Equal(t, "E310000000001", ncf.NextNumber("", eFiscalType()))
}

func TestNextNumber_PreservaAnchoObservado(t *testing.T) {
	// El ancho de formato sigue al del número previo, no al de la categoría.
	assert.Equal(t, "B01000100", ncf.NextNumber("B01000099", &entity.DocumentType{
		DocCodePrefix: "B01", NCFType: dgii.NCFTypeFiscal,
	}))
}
