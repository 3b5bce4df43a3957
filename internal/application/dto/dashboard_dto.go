package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard (KPIs del día y estado del stock).
type DashboardDTO struct {
	TodayRevenue     decimal.Decimal   `json:"ca_today"`
	TodayUnitsSold   int64             `json:"ventes_today"`
	StockQuantity    int64             `json:"total_stock_quantite"`
	StockValue       decimal.Decimal   `json:"total_stock_valeur"`
	TopSalesToday    []ProductSoldDTO  `json:"top_ventes_today"`
	LowStockProducts []ProductResponse `json:"low_stock_produits"`
}

// ProductSoldDTO unidades vendidas hoy de un producto.
type ProductSoldDTO struct {
	Name         string `json:"nom"`
	QuantitySold int64  `json:"quantite_vendue"`
}
