package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

// LossUseCase registra pérdidas (mermas, roturas). Mismo contrato de stock que SaleUseCase, sin precio.
type LossUseCase struct {
	txRunner TxRunner
	lossRepo repository.LossRepository
	now      func() time.Time
}

// NewLossUseCase construye el caso de uso.
func NewLossUseCase(txRunner TxRunner, lossRepo repository.LossRepository) *LossUseCase {
	return &LossUseCase{txRunner: txRunner, lossRepo: lossRepo, now: time.Now}
}

func (uc *LossUseCase) List(ctx context.Context) ([]dto.LossResponse, error) {
	losses, err := uc.lossRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LossResponse, 0, len(losses))
	for _, l := range losses {
		out = append(out, dto.NewLossResponse(l))
	}
	return out, nil
}

func (uc *LossUseCase) GetByID(ctx context.Context, id string) (*dto.LossResponse, error) {
	loss, err := uc.lossRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loss == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewLossResponse(loss)
	return &out, nil
}

// Create descuenta la cantidad perdida del producto.
func (uc *LossUseCase) Create(ctx context.Context, userID string, in dto.StockMovementRequest) (*dto.LossResponse, error) {
	if err := validMovement(in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	var loss *entity.Loss
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		lossRepo repository.LossRepository,
	) error {
		product, err := withdrawNew(ctx, productRepo, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		loss = &entity.Loss{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Date:      uc.now().UTC(),
			UserID:    userID,
			Product:   product,
		}
		return lossRepo.Create(ctx, loss)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewLossResponse(loss)
	return &out, nil
}

// Update restaura y vuelve a retirar igual que SaleUseCase.Update.
func (uc *LossUseCase) Update(ctx context.Context, id string, in dto.StockMovementRequest) (*dto.LossResponse, error) {
	if err := validMovement(in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	var loss *entity.Loss
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		lossRepo repository.LossRepository,
	) error {
		var err error
		loss, err = lossRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if loss == nil {
			return domain.ErrNotFound
		}
		target, err := rebook(ctx, productRepo, loss.ProductID, loss.Quantity, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		loss.ProductID = target.ID
		loss.Quantity = in.Quantity
		loss.Product = target
		return lossRepo.Update(ctx, loss)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewLossResponse(loss)
	return &out, nil
}

// Delete devuelve la cantidad perdida al stock y elimina el registro.
func (uc *LossUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		lossRepo repository.LossRepository,
	) error {
		loss, err := lossRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if loss == nil {
			return domain.ErrNotFound
		}
		if err := giveBack(ctx, productRepo, loss.ProductID, loss.Quantity); err != nil {
			return err
		}
		return lossRepo.Delete(ctx, loss.ID)
	})
}
