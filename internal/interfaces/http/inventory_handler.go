package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/application/inventory"
)

// SaleHandler ventas: cada escritura ajusta el stock del producto en la misma transacción.
type SaleHandler struct {
	uc *inventory.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         ventes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/ventes [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         ventes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventes/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta quantite del stock; prix_total = prix_vente × quantite.
// @Tags         ventes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "produit_id, quantite"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ventes [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar venta
// @Description  Devuelve la cantidad anterior al stock y descuenta la nueva. Requiere rol manager.
// @Tags         ventes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la venta"
// @Param        body  body  dto.StockMovementRequest  true  "produit_id, quantite"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventes/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular venta
// @Description  Devuelve la cantidad al stock. Requiere rol admin.
// @Tags         ventes
// @Security     Bearer
// @Param        id  path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventes/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LossHandler pérdidas (mermas): mismo ajuste de stock que las ventas, sin importe.
type LossHandler struct {
	uc *inventory.LossUseCase
}

// NewLossHandler construye el handler.
func NewLossHandler(uc *inventory.LossUseCase) *LossHandler {
	return &LossHandler{uc: uc}
}

// List godoc
// @Summary      Listar pérdidas
// @Tags         pertes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LossResponse
// @Router       /api/pertes [get]
func (h *LossHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener pérdida por ID
// @Tags         pertes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la pérdida"
// @Success      200  {object}  dto.LossResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pertes/{id} [get]
func (h *LossHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar pérdida
// @Tags         pertes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "produit_id, quantite"
// @Success      201   {object}  dto.LossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pertes [post]
func (h *LossHandler) Create(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar pérdida
// @Tags         pertes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la pérdida"
// @Param        body  body  dto.StockMovementRequest  true  "produit_id, quantite"
// @Success      200   {object}  dto.LossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pertes/{id} [put]
func (h *LossHandler) Update(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pérdida
// @Tags         pertes
// @Security     Bearer
// @Param        id  path  string  true  "ID de la pérdida"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pertes/{id} [delete]
func (h *LossHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
