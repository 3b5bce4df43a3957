package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto anexo asociado a un producto. No afecta el stock.
type Expense struct {
	ID          string
	ProductID   string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	UserID      string
	Product     *Product
}
