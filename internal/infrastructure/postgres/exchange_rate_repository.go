package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo tasas de cambio; company_id NULL = tasa global.
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

// Find busca la tasa exacta (empresa o global, fecha, base, quote).
func (r *ExchangeRateRepo) Find(ctx context.Context, companyID string, date time.Time, base, quote string) (*entity.ExchangeRate, error) {
	if companyID != "" && !isUUID(companyID) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, date, base, quote, rate, source, fetched_at
		FROM exchange_rates
		WHERE company_id IS NOT DISTINCT FROM $1::uuid AND date = $2 AND base = $3 AND quote = $4`
	var x entity.ExchangeRate
	var company *string
	err := r.q.QueryRow(ctx, query, nullable(companyID), entity.DateOnly(date), base, quote).Scan(
		&x.ID, &company, &x.Date, &x.Base, &x.Quote, &x.Rate, &x.Source, &x.FetchedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find exchange rate: %w", err)
	}
	x.CompanyID = deref(company)
	return &x, nil
}

// Upsert inserta o actualiza la tasa del día. created indica si fue inserción.
func (r *ExchangeRateRepo) Upsert(ctx context.Context, x *entity.ExchangeRate) (bool, error) {
	query := `
		INSERT INTO exchange_rates (id, company_id, date, base, quote, rate, source, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (COALESCE(company_id, '00000000-0000-0000-0000-000000000000'::uuid), date, base, quote)
		DO UPDATE SET rate = EXCLUDED.rate, source = EXCLUDED.source, fetched_at = EXCLUDED.fetched_at
		RETURNING id, (xmax = 0)`
	var created bool
	err := r.q.QueryRow(ctx, query,
		x.ID, nullable(x.CompanyID), entity.DateOnly(x.Date), x.Base, x.Quote, x.Rate, x.Source, x.FetchedAt,
	).Scan(&x.ID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert exchange rate: %w", err)
	}
	return created, nil
}
