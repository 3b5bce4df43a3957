package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

const (
	analysisTop = 5
	dateLayout  = "2006-01-02"
)

// ReportRenderer genera el PDF del análisis financiero (implementado con maroto).
type ReportRenderer interface {
	RenderAnalysis(a *dto.AnalysisDTO) ([]byte, error)
}

// FinancialUseCase análisis de rentabilidad entre dos fechas.
type FinancialUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
	renderer      ReportRenderer
}

// NewFinancialUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewFinancialUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location, renderer ReportRenderer) *FinancialUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &FinancialUseCase{analyticsRepo: analyticsRepo, loc: loc, renderer: renderer}
}

// Analyze calcula CA, COGS, beneficio bruto, gastos, beneficio neto, la serie diaria de CA y
// los top 5 por beneficio y por pérdidas. startDate y endDate son YYYY-MM-DD; el rango cubre
// desde las 00:00:00 del primero hasta las 23:59:59 del segundo. Cualquier fallo es ErrAnalysis.
func (uc *FinancialUseCase) Analyze(ctx context.Context, startDate, endDate string) (*dto.AnalysisDTO, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q: %v", domain.ErrAnalysis, startDate, err)
	}
	endDay, err := time.ParseInLocation(dateLayout, endDate, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q: %v", domain.ErrAnalysis, endDate, err)
	}
	// Se construye desde el calendario: los días de cambio de hora duran 23 o 25 horas.
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 0, uc.loc)

	sales, err := uc.analyticsRepo.GetSalesTotals(ctx, start, end)
	if err != nil {
		return nil, analysisErr("ventas", err)
	}
	expenses, err := uc.analyticsRepo.GetExpensesTotal(ctx, start, end)
	if err != nil {
		return nil, analysisErr("gastos", err)
	}
	daily, err := uc.analyticsRepo.GetDailyRevenue(ctx, start, end, uc.loc.String())
	if err != nil {
		return nil, analysisErr("serie diaria", err)
	}
	profitable, err := uc.analyticsRepo.GetTopProfitableProducts(ctx, start, end, analysisTop)
	if err != nil {
		return nil, analysisErr("top beneficio", err)
	}
	lost, err := uc.analyticsRepo.GetTopLostProducts(ctx, start, end, analysisTop)
	if err != nil {
		return nil, analysisErr("top pérdidas", err)
	}

	gross := sales.Revenue.Sub(sales.COGS)
	out := &dto.AnalysisDTO{
		Revenue:       sales.Revenue.Round(2),
		COGS:          sales.COGS.Round(2),
		GrossProfit:   gross.Round(2),
		Expenses:      expenses.Round(2),
		NetProfit:     gross.Sub(expenses).Round(2),
		DailyRevenue:  make([]dto.DailyRevenueDTO, 0, len(daily)),
		TopProfitable: make([]dto.ProductProfitDTO, 0, len(profitable)),
		TopLost:       make([]dto.ProductLostDTO, 0, len(lost)),
		StartDate:     startDate,
		EndDate:       endDate,
	}
	for _, d := range daily {
		out.DailyRevenue = append(out.DailyRevenue, dto.DailyRevenueDTO{Day: d.Day.Format(dateLayout), Revenue: d.Revenue.Round(2)})
	}
	for _, p := range profitable {
		out.TopProfitable = append(out.TopProfitable, dto.ProductProfitDTO{Name: p.ProductName, Profit: p.Profit.Round(2)})
	}
	for _, l := range lost {
		out.TopLost = append(out.TopLost, dto.ProductLostDTO{Name: l.ProductName, Quantity: l.Quantity})
	}
	return out, nil
}

// AnalyzePDF ejecuta Analyze y lo renderiza como PDF.
func (uc *FinancialUseCase) AnalyzePDF(ctx context.Context, startDate, endDate string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("%w: exportación PDF no configurada", domain.ErrAnalysis)
	}
	a, err := uc.Analyze(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.renderer.RenderAnalysis(a)
	if err != nil {
		return nil, analysisErr("pdf", err)
	}
	return pdf, nil
}

func analysisErr(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrAnalysis, step, err)
}
