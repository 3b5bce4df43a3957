package repository

import (
	"context"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
)

// ExpenseRepository puerto de persistencia para gastos anexos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	// Update y Delete devuelven domain.ErrNotFound si no afectan filas.
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Expense, error)
}
