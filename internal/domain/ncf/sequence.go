// Package ncf implementa las reglas fiscales dominicanas: formato de
// secuencias de comprobante (NCF/e-CF), clasificación de contribuyentes
// según DGII y agregación de montos ITBIS para reportes fiscales.
// Es lógica pura: sin I/O, sin estado.
package ncf

import (
	"fmt"
	"strings"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
)

// maxSeqDigits longitud máxima de la corrida de dígitos que se reconoce como
// secuencia al parsear. Los e-CF llevan 10 dígitos, pero los dos primeros se
// tratan como parte del prefijo: el ancho de formato sigue a lo parseado.
const maxSeqDigits = 8

// Sequence es un número de comprobante descompuesto: prefijo no numérico,
// valor de la corrida de dígitos final y su ancho observado. Para números
// con sufijo numérico, formatear con el mismo valor reproduce exactamente
// el número original.
type Sequence struct {
	Prefix string
	Number int64
	Width  int
}

// ParseSequence separa la corrida final de dígitos (hasta 8) del resto del
// número. Sin dígitos finales, el valor numérico es 0 con ancho 0.
func ParseSequence(formatted string) Sequence {
	digits := 0
	for digits < len(formatted) && digits < maxSeqDigits {
		c := formatted[len(formatted)-1-digits]
		if c < '0' || c > '9' {
			break
		}
		digits++
	}
	seq := Sequence{
		Prefix: formatted[:len(formatted)-digits],
		Width:  digits,
	}
	for _, c := range formatted[len(formatted)-digits:] {
		seq.Number = seq.Number*10 + int64(c-'0')
	}
	return seq
}

// Format re-emite el prefijo sin cambios y la parte numérica con ceros a la
// izquierda hasta el ancho observado al parsear.
func (s Sequence) Format() string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, s.Number)
}

// Next devuelve la secuencia siguiente: solo incrementa la parte numérica.
func (s Sequence) Next() Sequence {
	s.Number++
	return s
}

// NextNumber devuelve el siguiente número formateado a partir del último
// emitido. Con previous vacío parte de la secuencia inicial del tipo.
func NextNumber(previous string, docType *entity.DocumentType) string {
	if previous == "" {
		previous = StartingSequence(docType)
	}
	return ParseSequence(previous).Next().Format()
}

// StartingSequence es la secuencia inicial de un tipo de documento recién
// configurado: prefijo + ceros (10 dígitos para e-CF, 8 para NCF físico).
func StartingSequence(docType *entity.DocumentType) string {
	width := 8
	if docType.IsElectronic() {
		width = 10
	}
	return docType.DocCodePrefix + strings.Repeat("0", width)
}
