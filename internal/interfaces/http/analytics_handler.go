package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/magasin-api/internal/application/analytics"
	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
)

// AnalyticsHandler maneja los endpoints de análisis financiero (solo admin).
type AnalyticsHandler struct {
	uc *appanalytics.FinancialUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.FinancialUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Analyze godoc
// @Summary      Análisis financiero del período
// @Description  CA, COGS, beneficio bruto y neto, serie diaria, top 5 productos rentables y top 5 pérdidas. Una fecha mal formada devuelve ANALYSIS_ERROR.
// @Tags         analyse
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  true  "Fin del período (YYYY-MM-DD), inclusive"
// @Success      200  {object}  dto.AnalysisDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analyse [get]
func (h *AnalyticsHandler) Analyze(c *fiber.Ctx) error {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.uc.Analyze(c.UserContext(), req.StartDate, req.EndDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// AnalyzePDF godoc
// @Summary      Análisis financiero en PDF
// @Tags         analyse
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  true  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  true  "Fin del período (YYYY-MM-DD), inclusive"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analyse/pdf [get]
func (h *AnalyticsHandler) AnalyzePDF(c *fiber.Ctx) error {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.uc.AnalyzePDF(c.UserContext(), req.StartDate, req.EndDate)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="analyse_%s_%s.pdf"`, req.StartDate, req.EndDate))
	return c.Send(pdf)
}

func parseAnalysisRequest(c *fiber.Ctx) (dto.AnalysisRequest, error) {
	var req dto.AnalysisRequest
	if err := c.QueryParser(&req); err != nil {
		return req, fmt.Errorf("%w: parámetros de consulta inválidos", domain.ErrInvalidInput)
	}
	return req, validateStruct(&req)
}
