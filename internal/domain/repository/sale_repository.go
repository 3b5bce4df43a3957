package repository

import (
	"context"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID incluye el producto referenciado; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta (sin producto).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha descendente.
	List(ctx context.Context) ([]*entity.Sale, error)
}
