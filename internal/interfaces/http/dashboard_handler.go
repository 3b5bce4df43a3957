package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/magasin-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve los KPIs del día y el estado del stock.
// GET /api/dashboard
//
// Respuesta: DashboardDTO (ca_today, ventes_today, total_stock_quantite,
// total_stock_valeur, top_ventes_today[5], low_stock_produits[5]).
// "Hoy" se calcula en la zona horaria configurada del servidor.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	snapshot, err := h.uc.GetSnapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}
