package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/rates"
)

// FXHandler consulta e importación de tasas de cambio.
type FXHandler struct {
	resolver *fx.Resolver
	importer *rates.ImportECBUseCase
}

// NewFXHandler construye el handler. importer puede ser nil (sin importación).
func NewFXHandler(resolver *fx.Resolver, importer *rates.ImportECBUseCase) *FXHandler {
	return &FXHandler{resolver: resolver, importer: importer}
}

// GetRate godoc
// @Summary      Tasa de cambio de un día
// @Description  1 base = rate * quote. Busca la tasa de la entidad y luego la global, directa o inversa.
// @Tags         fx
// @Security     Bearer
// @Produce      json
// @Param        date   query     string  false  "YYYY-MM-DD (hoy si se omite)"
// @Param        base   query     string  true   "Moneda base (ISO 4217)"
// @Param        quote  query     string  true   "Moneda cotizada (ISO 4217)"
// @Success      200    {object}  dto.FXRateResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/fx-rates [get]
func (h *FXHandler) GetRate(c *fiber.Ctx) error {
	base, quote := c.Query("base"), c.Query("quote")
	if base == "" || quote == "" {
		return badRequest(c, "VALIDATION", "base y quote son requeridos")
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		return badRequest(c, "INVALID_DATE", "fecha inválida, formato YYYY-MM-DD")
	}
	if date.IsZero() {
		date = time.Now()
	}
	rate, err := h.resolver.GetRate(c.Context(), GetCompanyID(c), date, base, quote)
	if err != nil {
		return writeError(c, err)
	}
	base, _ = fx.NormalizeCode(base)
	quote, _ = fx.NormalizeCode(quote)
	return c.JSON(dto.FXRateResponse{Date: date.Format(dateLayout), Base: base, Quote: quote, Rate: rate})
}

// ImportECB godoc
// @Summary      Importar tasas diarias del BCE
// @Description  Guarda las tasas como globales con base EUR. Con dry_run=true solo informa.
// @Tags         fx
// @Security     Bearer
// @Produce      json
// @Param        dry_run  query     bool  false  "No escribir"
// @Success      200      {object}  rates.ImportResult
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/fx-rates/ecb/import [post]
func (h *FXHandler) ImportECB(c *fiber.Ctx) error {
	if h.importer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "importación de tasas no configurada"})
	}
	res, err := h.importer.Execute(c.Context(), c.QueryBool("dry_run", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
