package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/application/inventory"
)

// InventoryHandler salidas de inventario FIFO.
type InventoryHandler struct {
	uc *inventory.FIFOUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.FIFOUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Consume godoc
// @Summary      Consumir inventario (FIFO)
// @Description  Toma la cantidad de las capas más antiguas. Si no alcanza no consume nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ConsumeRequest  true  "item_id, qty"
// @Success      200   {object}  dto.ConsumeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consume [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if !in.Qty.IsPositive() {
		return badRequest(c, "VALIDATION", "qty debe ser positiva")
	}
	out, err := h.uc.ConsumeFromRequest(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
