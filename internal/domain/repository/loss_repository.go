package repository

import (
	"context"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
)

// LossRepository puerto de persistencia para pérdidas. Mismo contrato que SaleRepository.
type LossRepository interface {
	Create(ctx context.Context, loss *entity.Loss) error
	GetByID(ctx context.Context, id string) (*entity.Loss, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Loss, error)
	Update(ctx context.Context, loss *entity.Loss) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Loss, error)
}
