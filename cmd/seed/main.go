// Siembra el catálogo DGII de tipos de documento legal (NCF y e-CF).
// Idempotente: reejecutar no duplica filas (upsert por código).
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fiscal-do-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fiscal-do-api/pkg/config"
	"github.com/jhoicas/fiscal-do-api/pkg/dgii"
	"github.com/jhoicas/fiscal-do-api/pkg/logger"
)

type docType struct {
	name         string
	prefix       string
	code         string
	internalType string
	ncfType      string
}

// Catálogo oficial de comprobantes dominicanos. Las notas de crédito y
// débito no llevan tipo de NCF: actúan como comodín y valen para cualquier
// contraparte.
var catalogue = []docType{
	{"Factura de Crédito Fiscal", "B01", "01", "invoice", dgii.NCFTypeFiscal},
	{"Factura de Consumo", "B02", "02", "invoice", dgii.NCFTypeConsumer},
	{"Nota de Débito", "B03", "03", "debit_note", ""},
	{"Nota de Crédito", "B04", "04", "credit_note", ""},
	{"Comprobante de Compras", "B11", "11", "invoice", dgii.NCFTypeInformal},
	{"Comprobante para Gastos Menores", "B13", "13", "invoice", dgii.NCFTypeMinor},
	{"Comprobante para Regímenes Especiales", "B14", "14", "invoice", dgii.NCFTypeSpecial},
	{"Comprobante Gubernamental", "B15", "15", "invoice", dgii.NCFTypeGovernmental},
	{"Comprobante para Exportaciones", "B16", "16", "invoice", dgii.NCFTypeExport},
	{"Comprobante para Pagos al Exterior", "B17", "17", "invoice", dgii.NCFTypeExterior},

	{"Factura de Crédito Fiscal Electrónica", "E31", "31", "invoice", dgii.NCFTypeEFiscal},
	{"Factura de Consumo Electrónica", "E32", "32", "invoice", dgii.NCFTypeEConsumer},
	{"Nota de Débito Electrónica", "E33", "33", "debit_note", ""},
	{"Nota de Crédito Electrónica", "E34", "34", "credit_note", ""},
	{"Comprobante de Compras Electrónico", "E41", "41", "invoice", dgii.NCFTypeEInformal},
	{"Comprobante para Gastos Menores Electrónico", "E43", "43", "invoice", dgii.NCFTypeEMinor},
	{"Comprobante para Regímenes Especiales Electrónico", "E44", "44", "invoice", dgii.NCFTypeESpecial},
	{"Comprobante Gubernamental Electrónico", "E45", "45", "invoice", dgii.NCFTypeEGovernmental},
	{"Comprobante para Exportaciones Electrónico", "E46", "46", "invoice", dgii.NCFTypeEExport},
	{"Comprobante para Pagos al Exterior Electrónico", "E47", "47", "invoice", dgii.NCFTypeEExterior},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: cfg.App.Name})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	const query = `
		INSERT INTO document_types (id, name, doc_code_prefix, code, internal_type, ncf_type, country_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (country_code, code) DO UPDATE
		SET name = EXCLUDED.name, doc_code_prefix = EXCLUDED.doc_code_prefix,
		    internal_type = EXCLUDED.internal_type, ncf_type = EXCLUDED.ncf_type`

	for _, d := range catalogue {
		var ncfType *string
		if d.ncfType != "" {
			ncfType = &d.ncfType
		}
		if _, err := pool.Exec(ctx, query,
			uuid.New().String(), d.name, d.prefix, d.code, d.internalType, ncfType, dgii.CountryCode,
		); err != nil {
			log.Fatal().Err(err).Str("code", d.code).Msg("sembrar tipo de documento")
		}
		log.Info().Str("prefix", d.prefix).Str("name", d.name).Msg("tipo de documento sembrado")
	}

	log.Info().Int("total", len(catalogue)).Msg("catálogo DGII sembrado")
}
