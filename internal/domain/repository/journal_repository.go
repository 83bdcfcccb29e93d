package repository

import (
	"context"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
)

// JournalRepository define el puerto de persistencia para diarios.
// GetByID carga también los tipos de documento autorizados y sus vigencias.
type JournalRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Journal, error)
}

// DocumentTypeRepository define el puerto del catálogo de tipos de documento.
type DocumentTypeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.DocumentType, error)
	ListByCountry(ctx context.Context, countryCode string) ([]*entity.DocumentType, error)
}
