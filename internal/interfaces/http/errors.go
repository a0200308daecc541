package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	"github.com/jhoicas/erp-posting/internal/application/rates"
	"github.com/jhoicas/erp-posting/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// errorKind status y código HTTP de un sentinel de dominio.
type errorKind struct {
	status int
	code   string
}

// sentinelKinds el primero que coincide con errors.Is gana.
var sentinelKinds = []struct {
	err  error
	kind errorKind
}{
	{domain.ErrAlreadyPosted, errorKind{fiber.StatusConflict, "ALREADY_POSTED"}},
	{domain.ErrJournalPosted, errorKind{fiber.StatusConflict, "JOURNAL_POSTED"}},
	{domain.ErrAlreadySettled, errorKind{fiber.StatusConflict, "ALREADY_SETTLED"}},
	{domain.ErrInsufficientStock, errorKind{fiber.StatusConflict, "INSUFFICIENT_STOCK"}},
	{domain.ErrConflict, errorKind{fiber.StatusConflict, "CONFLICT"}},
	{domain.ErrDuplicate, errorKind{fiber.StatusConflict, "DUPLICATE"}},
	{rates.ErrImportInProgress, errorKind{fiber.StatusConflict, "IMPORT_IN_PROGRESS"}},
	{domain.ErrNotFound, errorKind{fiber.StatusNotFound, "NOT_FOUND"}},
	{domain.ErrForbidden, errorKind{fiber.StatusForbidden, "FORBIDDEN"}},
	{domain.ErrNoLines, errorKind{fiber.StatusUnprocessableEntity, "NO_LINES"}},
	{domain.ErrInvalidTransition, errorKind{fiber.StatusUnprocessableEntity, "INVALID_TRANSITION"}},
	{domain.ErrRateNotFound, errorKind{fiber.StatusUnprocessableEntity, "RATE_NOT_FOUND"}},
	{domain.ErrVatAreaMismatch, errorKind{fiber.StatusUnprocessableEntity, "VAT_AREA_MISMATCH"}},
	{domain.ErrUnbalanced, errorKind{fiber.StatusUnprocessableEntity, "UNBALANCED"}},
	{domain.ErrJournalInvalid, errorKind{fiber.StatusUnprocessableEntity, "JOURNAL_INVALID"}},
	{domain.ErrOverSettlement, errorKind{fiber.StatusUnprocessableEntity, "OVER_SETTLEMENT"}},
	{domain.ErrOpenItemClosed, errorKind{fiber.StatusUnprocessableEntity, "OPEN_ITEM_CLOSED"}},
	{domain.ErrInvalidSettlementAmount, errorKind{fiber.StatusUnprocessableEntity, "INVALID_SETTLEMENT_AMOUNT"}},
	{domain.ErrCurrencyMismatch, errorKind{fiber.StatusUnprocessableEntity, "CURRENCY_MISMATCH"}},
	{domain.ErrCompanyMismatch, errorKind{fiber.StatusUnprocessableEntity, "COMPANY_MISMATCH"}},
	{domain.ErrMissingConfig, errorKind{fiber.StatusUnprocessableEntity, "CONFIG"}},
	{domain.ErrInvalidInput, errorKind{fiber.StatusBadRequest, "VALIDATION"}},
}

// writeError traduce un error de aplicación a respuesta JSON.
// Los errores sin sentinel conocido son internos (500).
func writeError(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	status := fiber.StatusInternalServerError
	for _, s := range sentinelKinds {
		if errors.Is(err, s.err) {
			status, resp.Code = s.kind.status, s.kind.code
			break
		}
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Violations = ve.Violations
		if status == fiber.StatusBadRequest {
			status = fiber.StatusUnprocessableEntity
		}
	}
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Msg("error interno")
		resp.Message = "error interno"
	}
	return c.Status(status).JSON(resp)
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// parseBody decodifica y valida el body; responde 400 y devuelve false si falla.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				resp.Violations = append(resp.Violations, domain.Violation{Message: fe.Namespace() + ": " + fe.Tag()})
			}
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return true, nil
}
