package repository

import (
	"context"
	"time"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// ExchangeRateRepository tasas de cambio por fecha exacta.
type ExchangeRateRepository interface {
	// Find busca (fecha, base, quote); companyID vacío busca la tasa global.
	Find(ctx context.Context, companyID string, date time.Time, base, quote string) (*entity.ExchangeRate, error)
	// Upsert inserta o actualiza por (empresa, fecha, base, quote). created = true si insertó.
	Upsert(ctx context.Context, rate *entity.ExchangeRate) (created bool, err error)
}
