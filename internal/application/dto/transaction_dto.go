package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest entrada para crear o editar una venta o una pérdida.
type StockMovementRequest struct {
	ProductID string `json:"produit_id" validate:"required"`
	Quantity  int    `json:"quantite" validate:"gt=0,lte=2147483647"`
}

// SaleResponse salida de una venta con su producto.
type SaleResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"produit_id"`
	Quantity   int             `json:"quantite"`
	TotalPrice decimal.Decimal `json:"prix_total"`
	Date       time.Time       `json:"date"`
	Product    ProductResponse `json:"produit"`
}

// LossResponse salida de una pérdida con su producto.
type LossResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"produit_id"`
	Quantity  int             `json:"quantite"`
	Date      time.Time       `json:"date"`
	Product   ProductResponse `json:"produit"`
}

// ExpenseRequest entrada para crear o editar un gasto anexo.
type ExpenseRequest struct {
	ProductID   string          `json:"produit_id" validate:"required"`
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"montant"`
}

// ExpenseResponse salida de un gasto anexo.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"produit_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"montant"`
	Date        time.Time       `json:"date"`
	Product     ProductResponse `json:"produit"`
}
