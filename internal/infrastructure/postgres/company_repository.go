package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var (
	_ repository.CompanyRepository      = (*CompanyRepo)(nil)
	_ repository.NumberSeriesRepository = (*NumberSeriesRepo)(nil)
)

// CompanyRepo entidades legales sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByID obtiene una entidad por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, name, base_currency,
		       default_ar_account_id, default_ap_account_id, fx_gain_account_id, fx_loss_account_id,
		       series_journal, series_sales_offer, series_sales_order, series_sales_invoice,
		       series_purchase_order, series_purchase_invoice, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	var ar, ap, gain, loss *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.BaseCurrency,
		&ar, &ap, &gain, &loss,
		&c.SeriesJournal, &c.SeriesSalesOffer, &c.SeriesSalesOrder, &c.SeriesSalesInvoice,
		&c.SeriesPurchaseOrder, &c.SeriesPurchaseInvoice, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	c.DefaultARAccountID = deref(ar)
	c.DefaultAPAccountID = deref(ap)
	c.FXGainAccountID = deref(gain)
	c.FXLossAccountID = deref(loss)
	return &c, nil
}

// NumberSeriesRepo contadores de numeración.
type NumberSeriesRepo struct {
	q Querier
}

// NewNumberSeriesRepository construye el adaptador. Pasar la tx del caller.
func NewNumberSeriesRepository(q Querier) *NumberSeriesRepo {
	return &NumberSeriesRepo{q: q}
}

// GetForUpdate bloquea la fila de la serie hasta el fin de la transacción.
func (r *NumberSeriesRepo) GetForUpdate(ctx context.Context, companyID, code string) (*entity.NumberSeries, error) {
	query := `
		SELECT id, company_id, code, prefix, next_number, min_width
		FROM number_series WHERE company_id = $1 AND code = $2
		FOR UPDATE`
	var s entity.NumberSeries
	err := r.q.QueryRow(ctx, query, companyID, code).Scan(
		&s.ID, &s.CompanyID, &s.Code, &s.Prefix, &s.NextNumber, &s.MinWidth,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock number series: %w", err)
	}
	return &s, nil
}

// UpdateNextNumber persiste el siguiente número.
func (r *NumberSeriesRepo) UpdateNextNumber(ctx context.Context, s *entity.NumberSeries) error {
	_, err := r.q.Exec(ctx, `UPDATE number_series SET next_number = $1 WHERE id = $2`, s.NextNumber, s.ID)
	if err != nil {
		return fmt.Errorf("update number series: %w", err)
	}
	return nil
}
