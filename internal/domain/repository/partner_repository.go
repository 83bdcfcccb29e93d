package repository

import (
	"context"

	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
)

// PartnerRepository define el puerto de persistencia para contrapartes.
type PartnerRepository interface {
	Create(ctx context.Context, p *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	// GetCommercial resuelve el contraparte comercial: el propio partner o
	// su padre cuando es un sub-contacto.
	GetCommercial(ctx context.Context, id string) (*entity.Partner, error)
	Update(ctx context.Context, p *entity.Partner) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Partner, error)
}
