package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-posting/internal/application/documents"
	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/application/posting"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// PurchaseHandler documentos de compra.
type PurchaseHandler struct {
	docs   *documents.Service
	engine *posting.Engine
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(docs *documents.Service, engine *posting.Engine) *PurchaseHandler {
	return &PurchaseHandler{docs: docs, engine: engine}
}

func (h *PurchaseHandler) owned(c *fiber.Ctx) error {
	doc, err := h.docs.GetPurchase(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if doc.CompanyID != GetCompanyID(c) {
		return domain.ErrNotFound
	}
	return nil
}

// Create godoc
// @Summary      Crear documento de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePurchaseDocumentRequest  true  "Cabecera"
// @Success      201   {object}  dto.PurchaseDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchase-documents [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseDocumentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "fecha inválida, formato YYYY-MM-DD")
	}
	doc, err := h.docs.CreatePurchase(c.Context(), documents.CreatePurchaseInput{
		CompanyID:         GetCompanyID(c),
		CreditorID:        in.CreditorID,
		DocType:           entity.DocType(in.DocType),
		State:             entity.PurchaseState(in.State),
		Date:              date,
		Currency:          in.Currency,
		SupplierInvoiceNo: in.SupplierInvoiceNo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(doc))
}

// AddLine godoc
// @Summary      Agregar línea a un documento de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID del documento"
// @Param        body  body      dto.DocumentLineRequest  true  "Línea (price = costo unitario)"
// @Success      201   {object}  dto.PurchaseDocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-documents/{id}/lines [post]
func (h *PurchaseHandler) AddLine(c *fiber.Ctx) error {
	var in dto.DocumentLineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.owned(c); err != nil {
		return writeError(c, err)
	}
	doc, err := h.docs.AddPurchaseLine(c.Context(), c.Params("id"), lineInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(doc))
}

// ConvertToInvoice godoc
// @Summary      Convertir pedido de compra en factura
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "ID del documento"
// @Param        body  body      dto.ConvertPurchaseRequest  true  "Número de factura del proveedor"
// @Success      200   {object}  dto.PurchaseDocumentResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchase-documents/{id}/convert-to-invoice [post]
func (h *PurchaseHandler) ConvertToInvoice(c *fiber.Ctx) error {
	var in dto.ConvertPurchaseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.owned(c); err != nil {
		return writeError(c, err)
	}
	doc, err := h.docs.ConvertPurchaseToInvoice(c.Context(), c.Params("id"), in.SupplierInvoiceNo)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseResponse(doc))
}

// Post godoc
// @Summary      Contabilizar factura de compra
// @Description  Genera el asiento (inventario o gasto, IVA soportado, CxP), crea capas FIFO y la partida abierta.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.PostPurchaseResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-documents/{id}/post [post]
func (h *PurchaseHandler) Post(c *fiber.Ctx) error {
	if err := h.owned(c); err != nil {
		return writeError(c, err)
	}
	res, err := h.engine.PostPurchaseInvoice(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PostPurchaseResponse{
		Document: toPurchaseResponse(res.Document),
		Journal:  toJournalResponse(res.Journal),
		OpenItem: toOpenItemResponse(res.OpenItem),
	})
}
