package entity

import "time"

// Loss pérdida o merma: descuenta stock igual que una venta pero sin precio.
type Loss struct {
	ID        string
	ProductID string
	Quantity  int
	Date      time.Time
	UserID    string
	Product   *Product
}
