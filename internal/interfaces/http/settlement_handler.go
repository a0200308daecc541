package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/application/settlement"
	"github.com/jhoicas/erp-posting/internal/domain"
)

// SettlementHandler liquidaciones y partidas abiertas.
type SettlementHandler struct {
	svc *settlement.Service
}

// NewSettlementHandler construye el handler.
func NewSettlementHandler(svc *settlement.Service) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar liquidación pendiente
// @Description  Une un apunte de pago con una partida abierta. Importes en cero se derivan del apunte al liquidar.
// @Tags         settlements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSettlementRequest  true  "Partida, apunte e importes"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/settlements [post]
func (h *SettlementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSettlementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	st, err := h.svc.Create(c.Context(), settlement.CreateInput{
		CompanyID:            GetCompanyID(c),
		OpenItemID:           in.OpenItemID,
		PaymentJournalLineID: in.PaymentJournalLineID,
		AmountTx:             in.AmountTx,
		AmountBase:           in.AmountBase,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSettlementResponse(st))
}

// Settle godoc
// @Summary      Aplicar liquidación
// @Description  Descuenta el importe de la partida y sincroniza el estado de cobro del documento de venta.
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la liquidación"
// @Success      200  {object}  dto.SettleResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/settlements/{id}/settle [post]
func (h *SettlementHandler) Settle(c *fiber.Ctx) error {
	id := c.Params("id")
	st, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if st.CompanyID != GetCompanyID(c) {
		return writeError(c, domain.ErrNotFound)
	}
	res, err := h.svc.SettleAndSync(c.Context(), id, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.SettleResponse{
		Settlement: toSettlementResponse(res.Settlement),
		OpenItem:   toOpenItemResponse(res.OpenItem),
	}
	if res.Document != nil {
		out.DocumentState = string(res.Document.State)
	}
	return c.JSON(out)
}

// DebtorOpenItems godoc
// @Summary      Partidas abiertas de un deudor
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del deudor"
// @Success      200  {array}   dto.OpenItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/debtors/{id}/open-items [get]
func (h *SettlementHandler) DebtorOpenItems(c *fiber.Ctx) error {
	items, err := h.svc.OpenItemsForDebtor(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.OpenItemResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toOpenItemResponse(o))
	}
	return c.JSON(out)
}
