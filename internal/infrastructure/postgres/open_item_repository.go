package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var (
	_ repository.OpenItemRepository   = (*OpenItemRepo)(nil)
	_ repository.SettlementRepository = (*SettlementRepo)(nil)
)

// OpenItemRepo partidas abiertas AR/AP.
type OpenItemRepo struct {
	q Querier
}

// NewOpenItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOpenItemRepository(q Querier) *OpenItemRepo {
	return &OpenItemRepo{q: q}
}

const openItemColumns = `id, company_id, kind, debtor_id, creditor_id, sales_document_id, purchase_document_id,
	journal_id, currency, original_tx, original_base, remaining_tx, remaining_base, due_date, created_at`

func scanOpenItem(row pgx.Row) (*entity.OpenItem, error) {
	var o entity.OpenItem
	var debtor, creditor, sales, purchase, journal *string
	err := row.Scan(&o.ID, &o.CompanyID, &o.Kind, &debtor, &creditor, &sales, &purchase,
		&journal, &o.Currency, &o.OriginalTx, &o.OriginalBase, &o.RemainingTx, &o.RemainingBase, &o.DueDate, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.DebtorID = deref(debtor)
	o.CreditorID = deref(creditor)
	o.SalesDocumentID = deref(sales)
	o.PurchaseDocumentID = deref(purchase)
	o.JournalID = deref(journal)
	return &o, nil
}

// Create inserta una partida.
func (r *OpenItemRepo) Create(ctx context.Context, o *entity.OpenItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO open_items (`+openItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.CompanyID, o.Kind, nullable(o.DebtorID), nullable(o.CreditorID),
		nullable(o.SalesDocumentID), nullable(o.PurchaseDocumentID), nullable(o.JournalID),
		o.Currency, o.OriginalTx, o.OriginalBase, o.RemainingTx, o.RemainingBase, o.DueDate, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert open item: %w", err)
	}
	return nil
}

// GetForUpdate bloquea la partida.
func (r *OpenItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.OpenItem, error) {
	if !isUUID(id) {
		return nil, nil
	}
	o, err := scanOpenItem(r.q.QueryRow(ctx, `SELECT `+openItemColumns+` FROM open_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock open item: %w", err)
	}
	return o, nil
}

// LatestARForSalesDocumentForUpdate bloquea la partida AR más reciente del documento.
func (r *OpenItemRepo) LatestARForSalesDocumentForUpdate(ctx context.Context, salesDocumentID string) (*entity.OpenItem, error) {
	if !isUUID(salesDocumentID) {
		return nil, nil
	}
	o, err := scanOpenItem(r.q.QueryRow(ctx, `
		SELECT `+openItemColumns+` FROM open_items
		WHERE sales_document_id = $1 AND kind = $2
		ORDER BY created_at DESC, id DESC LIMIT 1
		FOR UPDATE`, salesDocumentID, entity.OpenItemAR))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock latest open item: %w", err)
	}
	return o, nil
}

// UpdateRemaining persiste los saldos.
func (r *OpenItemRepo) UpdateRemaining(ctx context.Context, o *entity.OpenItem) error {
	_, err := r.q.Exec(ctx, `UPDATE open_items SET remaining_tx = $1, remaining_base = $2 WHERE id = $3`,
		o.RemainingTx, o.RemainingBase, o.ID)
	if err != nil {
		return fmt.Errorf("update open item: %w", err)
	}
	return nil
}

// ListOpenByDebtor partidas AR con saldo del cliente, por vencimiento.
func (r *OpenItemRepo) ListOpenByDebtor(ctx context.Context, companyID, debtorID string) ([]*entity.OpenItem, error) {
	if !isUUID(debtorID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+openItemColumns+` FROM open_items
		WHERE company_id = $1 AND debtor_id = $2 AND kind = $3
		  AND (remaining_tx <> 0 OR remaining_base <> 0)
		ORDER BY due_date, created_at`, companyID, debtorID, entity.OpenItemAR)
	if err != nil {
		return nil, fmt.Errorf("list open items: %w", err)
	}
	defer rows.Close()
	var out []*entity.OpenItem
	for rows.Next() {
		o, err := scanOpenItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan open item: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// SettlementRepo liquidaciones.
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository construye el adaptador.
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

// Create inserta una liquidación pendiente.
func (r *SettlementRepo) Create(ctx context.Context, s *entity.Settlement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO settlements (id, company_id, open_item_id, payment_journal_line_id, amount_tx, amount_base, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.CompanyID, s.OpenItemID, s.PaymentJournalLineID, s.AmountTx, s.AmountBase, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

// GetForUpdate bloquea la liquidación.
func (r *SettlementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Settlement, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var s entity.Settlement
	var settledBy *string
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, open_item_id, payment_journal_line_id, amount_tx, amount_base, settled_at, settled_by, created_at
		FROM settlements WHERE id = $1 FOR UPDATE`, id,
	).Scan(&s.ID, &s.CompanyID, &s.OpenItemID, &s.PaymentJournalLineID, &s.AmountTx, &s.AmountBase, &s.SettledAt, &settledBy, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock settlement: %w", err)
	}
	s.SettledBy = deref(settledBy)
	return &s, nil
}

// MarkSettled persiste importes y sello.
func (r *SettlementRepo) MarkSettled(ctx context.Context, s *entity.Settlement) error {
	_, err := r.q.Exec(ctx, `
		UPDATE settlements SET amount_tx = $1, amount_base = $2, settled_at = $3, settled_by = $4 WHERE id = $5`,
		s.AmountTx, s.AmountBase, s.SettledAt, nullable(s.SettledBy), s.ID,
	)
	if err != nil {
		return fmt.Errorf("mark settlement: %w", err)
	}
	return nil
}
