package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-posting/internal/application/documents"
	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/application/posting"
	"github.com/jhoicas/erp-posting/internal/application/settlement"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// SalesHandler ciclo de vida y contabilización de documentos de venta.
type SalesHandler struct {
	docs        *documents.Service
	engine      *posting.Engine
	settlements *settlement.Service
}

// NewSalesHandler construye el handler.
func NewSalesHandler(docs *documents.Service, engine *posting.Engine, settlements *settlement.Service) *SalesHandler {
	return &SalesHandler{docs: docs, engine: engine, settlements: settlements}
}

// owned carga el documento y verifica que sea de la entidad del token.
// Un documento de otra entidad responde 404.
func (h *SalesHandler) owned(c *fiber.Ctx) (*entity.SalesDocument, error) {
	doc, err := h.docs.GetSales(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if doc.CompanyID != GetCompanyID(c) {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// Create godoc
// @Summary      Crear documento de venta
// @Description  Oferta, pedido o factura. Asigna los números que correspondan al estado inicial.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSalesDocumentRequest  true  "Cabecera"
// @Success      201   {object}  dto.SalesDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales-documents [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesDocumentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "fecha inválida, formato YYYY-MM-DD")
	}
	doc, err := h.docs.CreateSales(c.Context(), documents.CreateSalesInput{
		CompanyID:         GetCompanyID(c),
		DebtorID:          in.DebtorID,
		DocType:           entity.DocType(in.DocType),
		State:             entity.SalesState(in.State),
		Date:              date,
		Currency:          in.Currency,
		CreditsDocumentID: in.CreditsDocumentID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSalesResponse(doc))
}

// AddLine godoc
// @Summary      Agregar línea a un documento de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID del documento"
// @Param        body  body      dto.DocumentLineRequest  true  "Línea"
// @Success      201   {object}  dto.SalesDocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-documents/{id}/lines [post]
func (h *SalesHandler) AddLine(c *fiber.Ctx) error {
	var in dto.DocumentLineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if _, err := h.owned(c); err != nil {
		return writeError(c, err)
	}
	doc, err := h.docs.AddSalesLine(c.Context(), c.Params("id"), lineInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSalesResponse(doc))
}

func lineInput(in dto.DocumentLineRequest) documents.LineInput {
	return documents.LineInput{
		ItemID:      in.ItemID,
		Description: in.Description,
		Qty:         in.Qty,
		Price:       in.Price,
		Discount:    in.Discount,
		VatCodeID:   in.VatCodeID,
	}
}

// ConvertToOrder godoc
// @Summary      Convertir oferta en pedido
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.SalesDocumentResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-documents/{id}/convert-to-order [post]
func (h *SalesHandler) ConvertToOrder(c *fiber.Ctx) error {
	return h.transition(c, h.docs.ConvertToOrder)
}

// ConvertToInvoice godoc
// @Summary      Convertir pedido en factura
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.SalesDocumentResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-documents/{id}/convert-to-invoice [post]
func (h *SalesHandler) ConvertToInvoice(c *fiber.Ctx) error {
	return h.transition(c, h.docs.ConvertToInvoice)
}

// MarkCredited godoc
// @Summary      Marcar factura contabilizada como acreditada
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.SalesDocumentResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-documents/{id}/mark-credited [post]
func (h *SalesHandler) MarkCredited(c *fiber.Ctx) error {
	return h.transition(c, h.docs.MarkCredited)
}

func (h *SalesHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) (*entity.SalesDocument, error)) error {
	if _, err := h.owned(c); err != nil {
		return writeError(c, err)
	}
	doc, err := fn(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSalesResponse(doc))
}

// Post godoc
// @Summary      Contabilizar factura de venta
// @Description  Genera el asiento (ingresos, IVA, CxC, costo de ventas), consume inventario FIFO y crea la partida abierta.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.PostSalesResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-documents/{id}/post [post]
func (h *SalesHandler) Post(c *fiber.Ctx) error {
	if _, err := h.owned(c); err != nil {
		return writeError(c, err)
	}
	res, err := h.engine.PostSalesInvoice(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PostSalesResponse{
		Document: toSalesResponse(res.Document),
		Journal:  toJournalResponse(res.Journal),
		OpenItem: toOpenItemResponse(res.OpenItem),
	})
}

// SyncPaymentState godoc
// @Summary      Sincronizar estado de cobro
// @Description  Ajusta Posted / PartlyPaid / Paid según el saldo de la partida AR más reciente.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.SalesDocumentResponse
// @Router       /api/sales-documents/{id}/sync-payment-state [post]
func (h *SalesHandler) SyncPaymentState(c *fiber.Ctx) error {
	if _, err := h.owned(c); err != nil {
		return writeError(c, err)
	}
	doc, err := h.settlements.SyncSalesDocPaymentState(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSalesResponse(doc))
}
