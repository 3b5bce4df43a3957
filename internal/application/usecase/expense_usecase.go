package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

// ExpenseUseCase gastos anexos (frais) ligados a un producto. No tocan el stock.
type ExpenseUseCase struct {
	products repository.ProductRepository
	repo     repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(products repository.ProductRepository, repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{products: products, repo: repo}
}

func (uc *ExpenseUseCase) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewExpenseResponse(e))
	}
	return out, nil
}

func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewExpenseResponse(expense)
	return &out, nil
}

// Create registra el gasto con fecha actual. ErrNotFound si el producto no existe.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	product, err := uc.checkExpense(ctx, in)
	if err != nil {
		return nil, err
	}
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount.Round(2),
		Date:        time.Now().UTC(),
		UserID:      userID,
		Product:     product,
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(expense)
	return &out, nil
}

// Update cambia producto, descripción y monto; la fecha original se conserva.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.checkExpense(ctx, in)
	if err != nil {
		return nil, err
	}
	expense.ProductID = product.ID
	expense.Description = strings.TrimSpace(in.Description)
	expense.Amount = in.Amount.Round(2)
	expense.Product = product
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(expense)
	return &out, nil
}

func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ExpenseUseCase) checkExpense(ctx context.Context, in dto.ExpenseRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.Description) == "" || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
