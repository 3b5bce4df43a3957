package inventory

import (
	"context"

	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo (incluida la restauración de stock).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		lossRepo repository.LossRepository,
	) error) error
}
