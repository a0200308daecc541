package dto

import "github.com/jhoicas/erp-posting/internal/domain"

// ErrorResponse cuerpo de error HTTP. Violations trae el detalle de las
// validaciones de dominio (una por línea incumplida).
type ErrorResponse struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

