package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/inventory"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

// SaleUseCase registra ventas descontando stock de forma transaccional:
// cada alta, edición o baja bloquea las filas de producto afectadas (SELECT FOR UPDATE)
// y hace Commit o Rollback como una sola unidad.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso. saleRepo se usa para lecturas fuera de transacción.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, now: time.Now}
}

// List devuelve todas las ventas, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.NewSaleResponse(s))
	}
	return out, nil
}

// GetByID devuelve una venta o ErrNotFound.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// Create descuenta la cantidad del producto y guarda la venta al precio de venta actual.
// ErrInsufficientStock si el producto no existe o no alcanza el stock.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.StockMovementRequest) (*dto.SaleResponse, error) {
	if err := validMovement(in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.LossRepository,
	) error {
		product, err := withdrawNew(ctx, productRepo, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			Quantity:   in.Quantity,
			TotalPrice: inventory.LineTotal(product.SalePrice, in.Quantity),
			Date:       uc.now().UTC(),
			UserID:     userID,
			Product:    product,
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// Update cambia producto y/o cantidad: restaura lo retenido en el producto original y
// retira la nueva cantidad del producto destino; recalcula el total con su precio actual.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.StockMovementRequest) (*dto.SaleResponse, error) {
	if err := validMovement(in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.LossRepository,
	) error {
		var err error
		sale, err = saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		target, err := rebook(ctx, productRepo, sale.ProductID, sale.Quantity, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		sale.ProductID = target.ID
		sale.Quantity = in.Quantity
		sale.TotalPrice = inventory.LineTotal(target.SalePrice, in.Quantity)
		sale.Product = target
		return saleRepo.Update(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// Delete devuelve al stock la cantidad de la venta y la elimina. ErrNotFound si no existe.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.LossRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := giveBack(ctx, productRepo, sale.ProductID, sale.Quantity); err != nil {
			return err
		}
		return saleRepo.Delete(ctx, sale.ID)
	})
}
