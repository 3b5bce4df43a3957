package dto

import "github.com/shopspring/decimal"

// AnalysisDTO respuesta de GET /api/analyse.
type AnalysisDTO struct {
	Revenue       decimal.Decimal    `json:"chiffre_affaires"`
	COGS          decimal.Decimal    `json:"cogs"`
	GrossProfit   decimal.Decimal    `json:"benefice"`
	Expenses      decimal.Decimal    `json:"depenses"`
	NetProfit     decimal.Decimal    `json:"benefice_net"`
	DailyRevenue  []DailyRevenueDTO  `json:"graph_data"`
	TopProfitable []ProductProfitDTO `json:"top_profitable_products"`
	TopLost       []ProductLostDTO   `json:"top_lost_products"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
}

// DailyRevenueDTO punto de la serie diaria (jour en formato YYYY-MM-DD).
type DailyRevenueDTO struct {
	Day     string          `json:"jour"`
	Revenue decimal.Decimal `json:"ca_jour"`
}

// ProductProfitDTO beneficio bruto de un producto en el período.
type ProductProfitDTO struct {
	Name   string          `json:"nom"`
	Profit decimal.Decimal `json:"total_profit"`
}

// ProductLostDTO unidades perdidas de un producto en el período.
type ProductLostDTO struct {
	Name     string `json:"nom"`
	Quantity int64  `json:"total_lost"`
}

// AnalysisRequest parámetros de consulta de GET /api/analyse (YYYY-MM-DD, ambos inclusive).
type AnalysisRequest struct {
	StartDate string `query:"start_date" json:"start_date" validate:"required"`
	EndDate   string `query:"end_date" json:"end_date" validate:"required"`
}
