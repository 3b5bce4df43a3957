package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold por debajo de esta cantidad un producto aparece en el dashboard.
const LowStockThreshold = 10

// MaxQuantity las columnas quantity son INTEGER.
const MaxQuantity = math.MaxInt32

// Product producto del magasin. Quantity es la única fuente de verdad del stock y nunca es negativa.
type Product struct {
	ID            string
	Name          string // único
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Quantity      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
