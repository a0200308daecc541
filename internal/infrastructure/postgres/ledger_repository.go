package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var (
	_ repository.AccountRepository      = (*AccountRepo)(nil)
	_ repository.FiscalPeriodRepository = (*FiscalPeriodRepo)(nil)
	_ repository.JournalRepository      = (*JournalRepo)(nil)
)

// AccountRepo plan de cuentas.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, company_id, number, name, type, parent_id, is_postable, is_active`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	var parent *string
	if err := row.Scan(&a.ID, &a.CompanyID, &a.Number, &a.Name, &a.Type, &parent, &a.IsPostable, &a.IsActive); err != nil {
		return nil, err
	}
	a.ParentID = deref(parent)
	return &a, nil
}

// GetByID obtiene una cuenta.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// GetByIDs carga varias cuentas; las inexistentes no aparecen en el mapa.
func (r *AccountRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Account, error) {
	out := make(map[string]*entity.Account, len(ids))
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ANY($1::uuid[])`, valid)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out[a.ID] = a
	}
	return out, rows.Err()
}

// FiscalPeriodRepo periodos contables.
type FiscalPeriodRepo struct {
	q Querier
}

// NewFiscalPeriodRepository construye el adaptador.
func NewFiscalPeriodRepository(q Querier) *FiscalPeriodRepo {
	return &FiscalPeriodRepo{q: q}
}

// FindCovering devuelve el periodo que contiene la fecha (o nil).
func (r *FiscalPeriodRepo) FindCovering(ctx context.Context, companyID string, date time.Time) (*entity.FiscalPeriod, error) {
	query := `
		SELECT id, company_id, name, start_date, end_date, closed
		FROM fiscal_periods
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date DESC LIMIT 1`
	var p entity.FiscalPeriod
	err := r.q.QueryRow(ctx, query, companyID, entity.DateOnly(date)).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.StartDate, &p.EndDate, &p.Closed,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find fiscal period: %w", err)
	}
	return &p, nil
}

// JournalRepo asientos y apuntes.
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construye el adaptador.
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

// Create inserta cabecera y líneas. Asigna ID a las líneas que no lo traen.
func (r *JournalRepo) Create(ctx context.Context, j *entity.Journal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO journals (id, company_id, number, date, reference, state, posted_at, posted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.CompanyID, j.Number, j.Date, j.Reference, j.State, j.PostedAt, nullable(j.PostedBy), j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}
	for i := range j.Lines {
		l := &j.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.JournalID = j.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO journal_lines (id, journal_id, line_no, account_id, description, currency, fx_rate,
			                           debit_tx, credit_tx, debit_base, credit_base)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			l.ID, l.JournalID, l.LineNo, l.AccountID, l.Description, l.Currency, l.FXRate,
			l.DebitTx, l.CreditTx, l.DebitBase, l.CreditBase,
		)
		if err != nil {
			return fmt.Errorf("insert journal line %d: %w", l.LineNo, err)
		}
	}
	return nil
}

// GetByID obtiene el asiento con sus líneas.
func (r *JournalRepo) GetByID(ctx context.Context, id string) (*entity.Journal, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea cabecera y líneas.
func (r *JournalRepo) GetForUpdate(ctx context.Context, id string) (*entity.Journal, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

const journalColumns = `id, company_id, number, date, reference, state, posted_at, posted_by, created_at`

func scanJournal(row pgx.Row) (*entity.Journal, error) {
	var j entity.Journal
	var postedBy *string
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Number, &j.Date, &j.Reference, &j.State, &j.PostedAt, &postedBy, &j.CreatedAt); err != nil {
		return nil, err
	}
	j.PostedBy = deref(postedBy)
	return &j, nil
}

const lineColumns = `id, journal_id, line_no, account_id, description, currency, fx_rate, debit_tx, credit_tx, debit_base, credit_base`

func scanLine(row pgx.Row) (entity.JournalLine, error) {
	var l entity.JournalLine
	err := row.Scan(&l.ID, &l.JournalID, &l.LineNo, &l.AccountID, &l.Description, &l.Currency, &l.FXRate,
		&l.DebitTx, &l.CreditTx, &l.DebitBase, &l.CreditBase)
	return l, err
}

func (r *JournalRepo) get(ctx context.Context, id, lock string) (*entity.Journal, error) {
	if !isUUID(id) {
		return nil, nil
	}
	j, err := scanJournal(r.q.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE id = $1`+lock, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+` FROM journal_lines WHERE journal_id = $1 ORDER BY line_no`+lock, id)
	if err != nil {
		return nil, fmt.Errorf("list journal lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal line: %w", err)
		}
		j.Lines = append(j.Lines, l)
	}
	return j, rows.Err()
}

// MarkPosted persiste número, estado y sello.
func (r *JournalRepo) MarkPosted(ctx context.Context, j *entity.Journal) error {
	_, err := r.q.Exec(ctx, `
		UPDATE journals SET number = $1, state = $2, posted_at = $3, posted_by = $4 WHERE id = $5`,
		j.Number, j.State, j.PostedAt, nullable(j.PostedBy), j.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("journal number %s already used: %w", j.Number, err)
		}
		return fmt.Errorf("mark journal posted: %w", err)
	}
	return nil
}

// GetLine devuelve el apunte y la cabecera de su asiento.
func (r *JournalRepo) GetLine(ctx context.Context, lineID string) (*entity.JournalLine, *entity.Journal, error) {
	if !isUUID(lineID) {
		return nil, nil, nil
	}
	l, err := scanLine(r.q.QueryRow(ctx, `SELECT `+lineColumns+` FROM journal_lines WHERE id = $1`, lineID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get journal line: %w", err)
	}
	j, err := scanJournal(r.q.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE id = $1`, l.JournalID))
	if err != nil {
		return nil, nil, fmt.Errorf("get journal of line: %w", err)
	}
	return &l, j, nil
}
