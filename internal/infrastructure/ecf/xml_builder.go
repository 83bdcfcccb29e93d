// Generación del XML de comprobantes fiscales electrónicos (e-CF) según el
// formato de la DGII. El código de seguridad se deriva del documento
// canonicalizado (C14N) con SHA-256.

package ecf

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/fiscal-do-api/internal/application/fiscal"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
	"github.com/jhoicas/fiscal-do-api/internal/domain/ncf"
)

// Versión del formato e-CF publicada por la DGII.
const formatVersion = "1.0"

// securityCodeLen longitud del código de seguridad impreso en el QR.
const securityCodeLen = 6

var _ fiscal.ECFExporter = (*XMLBuilderService)(nil)

// XMLBuilderService construye el XML del e-CF.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el documento ECF y su código de seguridad.
func (s *XMLBuilderService) Build(
	invoice *entity.FiscalInvoice,
	company *entity.Company,
	partner *entity.Partner,
	docType *entity.DocumentType,
	amounts ncf.FiscalAmounts,
) (xmlDoc []byte, securityCode string, err error) {
	if invoice == nil || company == nil || partner == nil || docType == nil {
		return nil, "", fmt.Errorf("ecf: faltan invoice, company, partner o docType")
	}
	if invoice.DocumentNumber == "" {
		return nil, "", fmt.Errorf("ecf: el documento no tiene NCF asignado")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("ECF")

	// Encabezado: versión, identificación del documento y emisor/comprador.
	enc := root.CreateElement("Encabezado")
	enc.CreateElement("Version").SetText(formatVersion)

	idDoc := enc.CreateElement("IdDoc")
	idDoc.CreateElement("TipoeCF").SetText(docType.DocCodePrefix)
	idDoc.CreateElement("eNCF").SetText(invoice.DocumentNumber)
	if invoice.NCFExpirationDate != nil {
		idDoc.CreateElement("FechaVencimientoSecuencia").SetText(invoice.NCFExpirationDate.Format("02-01-2006"))
	}

	emisor := enc.CreateElement("Emisor")
	emisor.CreateElement("RNCEmisor").SetText(company.RNC)
	emisor.CreateElement("RazonSocialEmisor").SetText(company.Name)
	if company.Address != "" {
		emisor.CreateElement("DireccionEmisor").SetText(company.Address)
	}
	emisor.CreateElement("FechaEmision").SetText(invoice.Date.Format("02-01-2006"))

	comprador := enc.CreateElement("Comprador")
	if partner.VAT != "" {
		comprador.CreateElement("RNCComprador").SetText(partner.VAT)
	}
	comprador.CreateElement("RazonSocialComprador").SetText(partner.Name)

	// Totales: desglose ITBIS en moneda del documento.
	totales := enc.CreateElement("Totales")
	writeAmount(totales, "MontoGravadoTotal", amounts.ITBISTaxableAmount)
	writeAmount(totales, "MontoExento", amounts.ITBISExemptAmount)
	writeAmount(totales, "TotalITBIS", amounts.ITBISAmount)
	writeAmount(totales, "MontoTotal", amounts.InvoiceTotal)
	if invoice.CurrencyCode != company.CurrencyCode {
		totales.CreateElement("TipoMoneda").SetText(invoice.CurrencyCode)
		writeAmount(totales, "MontoTotalOtraMoneda", amounts.InvoiceTotal)
	}

	// Detalle: solo líneas de producto, numeradas desde 1.
	detalles := root.CreateElement("DetallesItems")
	lineNo := 0
	for i := range invoice.Lines {
		line := &invoice.Lines[i]
		if line.IsTaxLine {
			continue
		}
		lineNo++
		item := detalles.CreateElement("Item")
		item.CreateElement("NumeroLinea").SetText(fmt.Sprintf("%d", lineNo))
		item.CreateElement("NombreItem").SetText(line.Name)
		writeAmount(item, "CantidadItem", line.Quantity)
		writeAmount(item, "PrecioUnitarioItem", line.PriceUnit)
		writeAmount(item, "MontoItem", line.PriceSubtotal)
	}

	doc.Indent(2)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("ecf: serializar XML: %w", err)
	}

	code, err := securityCodeFor(raw)
	if err != nil {
		return nil, "", err
	}
	return raw, code, nil
}

// securityCodeFor canonicaliza el documento (C14N) y toma los primeros
// caracteres del SHA-256 como código de seguridad.
func securityCodeFor(xmlBytes []byte) (string, error) {
	canonical, err := canonicalizeXML(xmlBytes)
	if err != nil {
		return "", fmt.Errorf("ecf: canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:securityCodeLen], nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func writeAmount(parent *etree.Element, tag string, amount decimal.Decimal) {
	parent.CreateElement(tag).SetText(amount.StringFixed(2))
}
