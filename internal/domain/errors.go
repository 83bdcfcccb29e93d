package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores de validación fiscal: el usuario puede corregirlos antes de
// reintentar la operación (post, borrado, escritura).
var (
	// ErrVATRequired el contraparte no contribuyente supera el umbral sin RNC/cédula.
	ErrVATRequired = errors.New("el RNC o cédula del cliente es obligatorio para este tipo de NCF")
	// ErrTaxPayerTypeRequired el contraparte no tiene tipo de contribuyente.
	ErrTaxPayerTypeRequired = errors.New("las facturas fiscales requieren el tipo de contribuyente del contraparte")
	// ErrManualNumberRequired el documento exige número digitado por el usuario.
	ErrManualNumberRequired = errors.New("este tipo de comprobante requiere digitar el NCF manualmente")
	// ErrInvalidDocumentNumber el NCF no corresponde al tipo de documento.
	ErrInvalidDocumentNumber = errors.New("el NCF no corresponde al tipo de documento elegido")
	// ErrDocumentTypeNotAllowed el tipo de documento no es elegible para la factura.
	ErrDocumentTypeNotAllowed = errors.New("tipo de documento no permitido para esta factura")
)

// Errores de acceso fiscal: la operación está bloqueada por el historial del
// documento o del contraparte, no por datos corregibles. Se exponen distinto
// para que la UI pueda explicar por qué el campo está bloqueado.
var (
	// ErrFiscalFieldLocked el partner ya emitió documentos fiscales publicados.
	ErrFiscalFieldLocked = errors.New("no se pueden modificar los campos fiscales luego de emitir documentos fiscales")
	// ErrPostedFiscalInvoice la factura fiscal de compra fue publicada alguna vez.
	ErrPostedFiscalInvoice = errors.New("no se puede eliminar una factura fiscal que ha sido publicada")
)
