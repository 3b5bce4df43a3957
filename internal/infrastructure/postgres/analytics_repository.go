package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y el análisis financiero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesTotals CA, COGS (precio de compra actual × cantidad) y unidades vendidas del período.
// COALESCE devuelve cero si no hay filas.
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, start, end time.Time) (repository.SalesTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total_price),               0) AS revenue,
	    COALESCE(SUM(p.purchase_price * s.quantity), 0) AS cogs,
	    COALESCE(SUM(s.quantity),                  0) AS units
	FROM sales s
	JOIN products p ON p.id = s.product_id
	WHERE s.date BETWEEN $1 AND $2`

	var t repository.SalesTotals
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&t.Revenue, &t.COGS, &t.UnitsSold); err != nil {
		return repository.SalesTotals{}, fmt.Errorf("analytics.GetSalesTotals: %w", err)
	}
	return t, nil
}

// GetExpensesTotal suma de gastos anexos del período.
func (r *AnalyticsRepo) GetExpensesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date BETWEEN $1 AND $2`, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetExpensesTotal: %w", err)
	}
	return total, nil
}

// GetDailyRevenue CA agrupado por día calendario en la zona tz.
func (r *AnalyticsRepo) GetDailyRevenue(ctx context.Context, start, end time.Time, tz string) ([]repository.DailyRevenueResult, error) {
	const query = `
	SELECT
	    (s.date AT TIME ZONE $3)::date AS jour,
	    SUM(s.total_price)             AS ca_jour
	FROM sales s
	WHERE s.date BETWEEN $1 AND $2
	GROUP BY jour
	ORDER BY jour`

	rows, err := r.q.Query(ctx, query, start, end, tz)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDailyRevenue: %w", err)
	}
	defer rows.Close()

	results := []repository.DailyRevenueResult{}
	for rows.Next() {
		var row repository.DailyRevenueResult
		if err := rows.Scan(&row.Day, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetDailyRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProfitableProducts productos con mayor beneficio bruto (CA − precio de compra × cantidad).
func (r *AnalyticsRepo) GetTopProfitableProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductProfitResult, error) {
	const query = `
	SELECT
	    p.name,
	    SUM(s.total_price - p.purchase_price * s.quantity) AS total_profit
	FROM sales s
	JOIN products p ON p.id = s.product_id
	WHERE s.date BETWEEN $1 AND $2
	GROUP BY p.name
	ORDER BY total_profit DESC, p.name
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProfitableProducts: %w", err)
	}
	defer rows.Close()

	results := []repository.ProductProfitResult{}
	for rows.Next() {
		var row repository.ProductProfitResult
		if err := rows.Scan(&row.ProductName, &row.Profit); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProfitableProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopLostProducts productos con más unidades perdidas.
func (r *AnalyticsRepo) GetTopLostProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductQuantityResult, error) {
	const query = `
	SELECT p.name, SUM(l.quantity) AS total_lost
	FROM losses l
	JOIN products p ON p.id = l.product_id
	WHERE l.date BETWEEN $1 AND $2
	GROUP BY p.name
	ORDER BY total_lost DESC, p.name
	LIMIT $3`
	return r.quantities(ctx, "GetTopLostProducts", query, start, end, limit)
}

// GetTopSoldProducts productos con más unidades vendidas.
func (r *AnalyticsRepo) GetTopSoldProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductQuantityResult, error) {
	const query = `
	SELECT p.name, SUM(s.quantity) AS quantite_vendue
	FROM sales s
	JOIN products p ON p.id = s.product_id
	WHERE s.date BETWEEN $1 AND $2
	GROUP BY p.name
	ORDER BY quantite_vendue DESC, p.name
	LIMIT $3`
	return r.quantities(ctx, "GetTopSoldProducts", query, start, end, limit)
}

func (r *AnalyticsRepo) quantities(ctx context.Context, op, query string, args ...any) ([]repository.ProductQuantityResult, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", op, err)
	}
	defer rows.Close()

	results := []repository.ProductQuantityResult{}
	for rows.Next() {
		var row repository.ProductQuantityResult
		if err := rows.Scan(&row.ProductName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("analytics.%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetStockTotals cantidad total en stock y su valor a precio de compra.
func (r *AnalyticsRepo) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	var t repository.StockTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * purchase_price), 0)
		FROM products`).Scan(&t.Quantity, &t.Value)
	if err != nil {
		return repository.StockTotals{}, fmt.Errorf("analytics.GetStockTotals: %w", err)
	}
	return t, nil
}

// GetLowStockProducts productos bajo el umbral, los más escasos primero.
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE quantity < $1
		ORDER BY quantity, name
		LIMIT $2`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLowStockProducts: %w", err)
	}
	defer rows.Close()

	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.GetLowStockProducts scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
