package dto

import "github.com/shopspring/decimal"

// ProductRequest entrada para crear o editar un producto (nombres de campo en francés del contrato JSON).
type ProductRequest struct {
	Name          string          `json:"nom" validate:"required,min=1,max=200"`
	PurchasePrice decimal.Decimal `json:"prix_achat"`
	SalePrice     decimal.Decimal `json:"prix_vente"`
	Quantity      int             `json:"quantite" validate:"gte=0,lte=2147483647"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"nom"`
	PurchasePrice decimal.Decimal `json:"prix_achat"`
	SalePrice     decimal.Decimal `json:"prix_vente"`
	Quantity      int             `json:"quantite"`
}
