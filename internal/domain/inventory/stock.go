package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/magasin-api/internal/domain"
)

// Withdraw descuenta qty del stock disponible.
// Devuelve ErrInvalidInput si qty <= 0 y ErrInsufficientStock si onHand < qty; el stock nunca queda negativo.
func Withdraw(onHand, qty int) (int, error) {
	if qty <= 0 {
		return onHand, domain.ErrInvalidInput
	}
	if onHand < qty {
		return onHand, domain.ErrInsufficientStock
	}
	return onHand - qty, nil
}

// Restore devuelve al stock la cantidad retenida por una venta o pérdida.
func Restore(onHand, withheld int) int {
	if withheld <= 0 {
		return onHand
	}
	return onHand + withheld
}

// LineTotal precio unitario × cantidad, redondeado a 2 decimales.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}
