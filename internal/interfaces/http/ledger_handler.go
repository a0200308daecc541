package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/application/numbering"
	"github.com/jhoicas/erp-posting/internal/domain"
)

// LedgerHandler numeración, asientos y comprobantes.
type LedgerHandler struct {
	allocator *numbering.Allocator
	journals  *ledger.JournalService
	vouchers  *ledger.VoucherUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(allocator *numbering.Allocator, journals *ledger.JournalService, vouchers *ledger.VoucherUseCase) *LedgerHandler {
	return &LedgerHandler{allocator: allocator, journals: journals, vouchers: vouchers}
}

// Allocate godoc
// @Summary      Asignar el siguiente número de una serie
// @Tags         numbering
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de la serie"
// @Success      200   {object}  dto.AllocateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/number-series/{code}/allocate [post]
func (h *LedgerHandler) Allocate(c *fiber.Ctx) error {
	code := c.Params("code")
	number, err := h.allocator.Allocate(c.Context(), GetCompanyID(c), code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AllocateResponse{Series: code, Number: number})
}

// CreateJournal godoc
// @Summary      Crear asiento en borrador
// @Description  Usado para diarios de pago bancario que luego se liquidan contra partidas abiertas.
// @Tags         journals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateJournalRequest  true  "Cabecera y apuntes"
// @Success      201   {object}  dto.JournalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/journals [post]
func (h *LedgerHandler) CreateJournal(c *fiber.Ctx) error {
	var in dto.CreateJournalRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "fecha inválida, formato YYYY-MM-DD")
	}
	lines := make([]ledger.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.LineInput{
			AccountID:   l.AccountID,
			Description: l.Description,
			Currency:    l.Currency,
			FXRate:      l.FXRate,
			DebitTx:     l.DebitTx,
			CreditTx:    l.CreditTx,
			DebitBase:   l.DebitBase,
			CreditBase:  l.CreditBase,
		})
	}
	j, err := h.journals.CreateDraft(c.Context(), ledger.CreateJournalInput{
		CompanyID: GetCompanyID(c),
		Date:      date,
		Reference: in.Reference,
		Lines:     lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toJournalResponse(j))
}

// PostJournal godoc
// @Summary      Contabilizar asiento
// @Description  Valida el asiento completo, asigna número y lo marca contabilizado. Repetir no hace nada.
// @Tags         journals
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del asiento"
// @Success      200  {object}  dto.JournalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/journals/{id}/post [post]
func (h *LedgerHandler) PostJournal(c *fiber.Ctx) error {
	id := c.Params("id")
	j, err := h.journals.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if j.CompanyID != GetCompanyID(c) {
		return writeError(c, domain.ErrNotFound)
	}
	j, err = h.journals.Post(c.Context(), id, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toJournalResponse(j))
}

// JournalPDF godoc
// @Summary      Comprobante PDF de un asiento contabilizado
// @Tags         journals
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/journals/{id}/pdf [get]
func (h *LedgerHandler) JournalPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.vouchers.Download(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrForbidden {
			err = domain.ErrNotFound
		}
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
