package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
)

// SalesTotals agregados de ventas en un período.
type SalesTotals struct {
	Revenue   decimal.Decimal // Σ total_price
	COGS      decimal.Decimal // Σ purchase_price × quantity
	UnitsSold int64
}

// DailyRevenueResult ingreso de un día (fecha local de la zona configurada).
type DailyRevenueResult struct {
	Day     time.Time
	Revenue decimal.Decimal
}

// ProductProfitResult beneficio bruto por producto.
type ProductProfitResult struct {
	ProductName string
	Profit      decimal.Decimal // Σ (total_price - purchase_price × quantity)
}

// ProductQuantityResult cantidad agregada por producto (vendida o perdida).
type ProductQuantityResult struct {
	ProductName string
	Quantity    int64
}

// StockTotals valorización del inventario actual.
type StockTotals struct {
	Quantity int64
	Value    decimal.Decimal // Σ quantity × purchase_price
}

// AnalyticsRepository consultas de solo lectura para dashboard y análisis financiero.
// Los rangos [start, end] son inclusivos.
type AnalyticsRepository interface {
	GetSalesTotals(ctx context.Context, start, end time.Time) (SalesTotals, error)
	GetExpensesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// GetDailyRevenue agrupa por día en la zona tz, ordenado ascendente.
	GetDailyRevenue(ctx context.Context, start, end time.Time, tz string) ([]DailyRevenueResult, error)
	GetTopProfitableProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductProfitResult, error)
	GetTopLostProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductQuantityResult, error)
	GetTopSoldProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductQuantityResult, error)
	GetStockTotals(ctx context.Context) (StockTotals, error)
	// GetLowStockProducts productos con quantity < threshold, ascendente por cantidad.
	GetLowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.Product, error)
}
