package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	ErrMissingConfig = errors.New("configuración contable faltante")

	ErrAlreadyPosted           = errors.New("el documento ya está contabilizado")
	ErrNoLines                 = errors.New("el documento no tiene líneas")
	ErrInvalidTransition       = errors.New("transición de estado no permitida")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrRateNotFound            = errors.New("tasa de cambio no encontrada")
	ErrVatAreaMismatch         = errors.New("código de IVA no permitido para el área de IVA de la contraparte")
	ErrUnbalanced              = errors.New("el asiento no cuadra")
	ErrJournalInvalid          = errors.New("el asiento no es válido para contabilizar")
	ErrJournalPosted           = errors.New("el asiento ya está contabilizado y es inmutable")
	ErrAlreadySettled          = errors.New("la liquidación ya fue aplicada")
	ErrOverSettlement          = errors.New("el importe supera el saldo pendiente")
	ErrOpenItemClosed          = errors.New("la partida abierta no tiene saldo pendiente")
	ErrInvalidSettlementAmount = errors.New("el importe de la liquidación debe ser distinto de cero y del mismo signo que el saldo")
	ErrCurrencyMismatch        = errors.New("la moneda no coincide")
	ErrCompanyMismatch         = errors.New("la entidad no coincide")
)

// ConfigError indica cableado contable faltante (cuenta, serie o cuenta de IVA).
// Nunca se reintenta; se muestra tal cual al administrador.
type ConfigError struct {
	What string
}

// MissingConfig construye un ConfigError.
func MissingConfig(format string, args ...any) *ConfigError {
	return &ConfigError{What: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return ErrMissingConfig.Error() + ": " + e.What
}

// Unwrap permite errors.Is(err, ErrMissingConfig).
func (e *ConfigError) Unwrap() error { return ErrMissingConfig }

// Violation una regla incumplida. Line = 0 se refiere a la cabecera.
type Violation struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ValidationError error de validación de dominio, recuperable por el usuario.
// Err es el sentinel (ErrUnbalanced, ErrOverSettlement, ...) y Violations el detalle.
type ValidationError struct {
	Err        error
	Violations []Violation
}

// Invalid envuelve un sentinel con un mensaje de detalle.
func Invalid(err error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Err:        err,
		Violations: []Violation{{Message: fmt.Sprintf(format, args...)}},
	}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Line > 0 {
			parts = append(parts, fmt.Sprintf("línea %d: %s", v.Line, v.Message))
			continue
		}
		parts = append(parts, v.Message)
	}
	return e.Err.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsConfig indica si err es un error de configuración contable.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsValidation indica si err es un error de validación de dominio.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
