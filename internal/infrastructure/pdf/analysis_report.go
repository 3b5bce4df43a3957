// Package pdf genera la versión imprimible del análisis financiero.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período        │  Fecha de emisión        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: CA / COGS / Bénéfice / Dépenses / Bénéfice net     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Jour | CA du jour                                    │
//	│  TABLA: Top produits rentables                               │
//	│  TABLA: Top pertes                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/magasin-api/internal/application/analytics"
	"github.com/jhoicas/magasin-api/internal/application/dto"
)

var _ analytics.ReportRenderer = (*AnalysisReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// AnalysisReport implementa analytics.ReportRenderer usando Maroto v2.
type AnalysisReport struct {
	shopName string
	printer  *message.Printer
	now      func() time.Time
}

// NewAnalysisReport construye el generador. shopName aparece en el encabezado y como autor.
func NewAnalysisReport(shopName string) *AnalysisReport {
	return &AnalysisReport{
		shopName: shopName,
		printer:  message.NewPrinter(language.French),
		now:      time.Now,
	}
}

// RenderAnalysis genera el PDF y devuelve sus bytes.
func (g *AnalysisReport) RenderAnalysis(a *dto.AnalysisDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Analyse financière", true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(a))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRows(a)...)
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle("Chiffre d'affaires par jour"))
	m.AddRows(tableHeader("Jour", "CA du jour"))
	for _, d := range a.DailyRevenue {
		m.AddRows(tableRow(d.Day, g.money(d.Revenue), nil))
	}
	if len(a.DailyRevenue) == 0 {
		m.AddRows(emptyRow())
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle("Produits les plus rentables"))
	m.AddRows(tableHeader("Produit", "Bénéfice"))
	for _, p := range a.TopProfitable {
		m.AddRows(tableRow(p.Name, g.money(p.Profit), nil))
	}
	if len(a.TopProfitable) == 0 {
		m.AddRows(emptyRow())
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle("Produits les plus perdus"))
	m.AddRows(tableHeader("Produit", "Quantité perdue"))
	for _, l := range a.TopLost {
		m.AddRows(tableRow(l.Name, g.number(l.Quantity), colorLoss))
	}
	if len(a.TopLost) == 0 {
		m.AddRows(emptyRow())
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del comercio + período (izq) y fecha de emisión (der).
func (g *AnalysisReport) headerRow(a *dto.AnalysisDTO) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Analyse financière du %s au %s", frenchDate(a.StartDate), frenchDate(a.EndDate)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Édité le "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows: bloque de KPIs alineado a la derecha; el beneficio neto negativo va en rojo.
func (g *AnalysisReport) summaryRows(a *dto.AnalysisDTO) []core.Row {
	kpi := func(label, value string, bold bool, color *props.Color) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(4),
			col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1})),
			col.New(4).Add(text.New(value, props.Text{Style: style, Size: 9, Align: align.Right, Right: 1, Top: 1, Color: color})),
		)
	}
	netColor := colorPrimary
	if a.NetProfit.IsNegative() {
		netColor = colorLoss
	}
	return []core.Row{
		kpi("Chiffre d'affaires :", g.money(a.Revenue), false, nil),
		kpi("Coût des ventes :", g.money(a.COGS), false, nil),
		kpi("Bénéfice brut :", g.money(a.GrossProfit), false, nil),
		kpi("Dépenses :", g.money(a.Expenses), false, nil),
		kpi("Bénéfice net :", g.money(a.NetProfit), true, netColor),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
	})))
}

func tableHeader(left, right string) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(left, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(right, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func tableRow(left, right string, color *props.Color) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(left, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(right, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color})),
	)
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(text.New("Aucune donnée sur la période", props.Text{
		Size: 8, Top: 1, Left: 1, Color: colorGray,
	})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// las fuentes base de gofpdf no traen los espacios finos que usa CLDR para el francés
var spaceFix = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

// money formatea con separadores franceses: 1 234,50 €
func (g *AnalysisReport) money(d decimal.Decimal) string {
	return spaceFix.Replace(g.printer.Sprintf("%.2f", d.InexactFloat64())) + " €"
}

func (g *AnalysisReport) number(n int64) string {
	return spaceFix.Replace(g.printer.Sprintf("%d", n))
}

// frenchDate convierte YYYY-MM-DD a DD/MM/YYYY; si no parsea devuelve el valor tal cual.
func frenchDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
