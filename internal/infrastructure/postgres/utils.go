package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isNoRows pgx.ErrNoRows: el repo devuelve nil, nil.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// nullable "" -> NULL para columnas UUID/TEXT opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// isUUID evita enviar a Postgres IDs que fallarían el cast a uuid; se tratan como inexistentes.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
