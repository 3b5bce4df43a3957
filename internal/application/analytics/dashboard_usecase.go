// Package analytics contiene los casos de uso de reportes: el dashboard del día y el
// análisis financiero por período (JSON y PDF).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

const dashboardTop = 5 // filas en los widgets del dashboard

// DashboardUseCase genera el resumen del día y el estado del stock.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define qué es "hoy".
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, loc: loc, now: time.Now}
}

// GetSnapshot construye el DashboardDTO.
//
// Cuatro consultas en paralelo:
//  1. GetSalesTotals(hoy)        → ca_today + ventes_today
//  2. GetStockTotals             → cantidad y valor del stock
//  3. GetTopSoldProducts(hoy, 5) → top_ventes_today
//  4. GetLowStockProducts(10, 5) → low_stock_produits
func (uc *DashboardUseCase) GetSnapshot(ctx context.Context) (*dto.DashboardDTO, error) {
	todayStart, todayEnd := dayBounds(uc.now().In(uc.loc))

	type salesResult struct {
		totals repository.SalesTotals
		err    error
	}
	type stockResult struct {
		totals repository.StockTotals
		err    error
	}
	type topResult struct {
		rows []repository.ProductQuantityResult
		err  error
	}
	type lowResult struct {
		products []*entity.Product
		err      error
	}

	salesCh := make(chan salesResult, 1)
	stockCh := make(chan stockResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetSalesTotals(ctx, todayStart, todayEnd)
		salesCh <- salesResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetStockTotals(ctx)
		stockCh <- stockResult{t, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopSoldProducts(ctx, todayStart, todayEnd, dashboardTop)
		topCh <- topResult{rows, err}
	}()
	go func() {
		ps, err := uc.analyticsRepo.GetLowStockProducts(ctx, entity.LowStockThreshold, dashboardTop)
		lowCh <- lowResult{ps, err}
	}()

	sales := <-salesCh
	stock := <-stockCh
	top := <-topCh
	low := <-lowCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", sales.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock: %w", stock.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top ventas: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	out := &dto.DashboardDTO{
		TodayRevenue:     sales.totals.Revenue.Round(2),
		TodayUnitsSold:   sales.totals.UnitsSold,
		StockQuantity:    stock.totals.Quantity,
		StockValue:       stock.totals.Value.Round(2),
		TopSalesToday:    make([]dto.ProductSoldDTO, 0, len(top.rows)),
		LowStockProducts: make([]dto.ProductResponse, 0, len(low.products)),
	}
	for _, r := range top.rows {
		out.TopSalesToday = append(out.TopSalesToday, dto.ProductSoldDTO{Name: r.ProductName, QuantitySold: r.Quantity})
	}
	for _, p := range low.products {
		out.LowStockProducts = append(out.LowStockProducts, dto.NewProductResponse(p))
	}
	return out, nil
}

// dayBounds devuelve 00:00:00 y 23:59:59.999999999 del día de t, en su zona.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
