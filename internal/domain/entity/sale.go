package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de un producto. TotalPrice = precio de venta del producto × Quantity al momento de crear/editar.
type Sale struct {
	ID         string
	ProductID  string
	Quantity   int
	TotalPrice decimal.Decimal
	Date       time.Time
	UserID     string // vacío si el usuario fue eliminado
	Product    *Product
}
