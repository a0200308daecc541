package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/money"
)

// JournalState estado del asiento. Draft -> Posted, sin retorno.
type JournalState string

const (
	JournalDraft  JournalState = "draft"
	JournalPosted JournalState = "posted"
)

// Journal cabecera de asiento contable.
type Journal struct {
	ID        string
	CompanyID string
	Number    string // se asigna al contabilizar
	Date      time.Time
	Reference string
	State     JournalState
	PostedAt  *time.Time
	PostedBy  string
	CreatedAt time.Time
	Lines     []JournalLine
}

// JournalLine apunte. Debe tener débito o crédito, nunca ambos ni ninguno.
// Currency y FXRate vacíos significan moneda base.
type JournalLine struct {
	ID          string
	JournalID   string
	LineNo      int
	AccountID   string
	Description string
	Currency    string
	FXRate      decimal.Decimal
	DebitTx     decimal.Decimal
	CreditTx    decimal.Decimal
	DebitBase   decimal.Decimal
	CreditBase  decimal.Decimal
}

// NewDraftJournal construye un asiento en borrador.
func NewDraftJournal(id, companyID string, date time.Time, reference string, now time.Time) *Journal {
	return &Journal{
		ID:        id,
		CompanyID: companyID,
		Date:      DateOnly(date),
		Reference: reference,
		State:     JournalDraft,
		CreatedAt: now,
	}
}

// IsPosted indica si el asiento ya es inmutable.
func (j *Journal) IsPosted() bool { return j.State == JournalPosted }

// AddLine agrega un apunte; numera las líneas desde 1.
func (j *Journal) AddLine(l JournalLine) error {
	if j.IsPosted() {
		return domain.ErrJournalPosted
	}
	l.JournalID = j.ID
	l.LineNo = len(j.Lines) + 1
	j.Lines = append(j.Lines, l)
	return nil
}

// Debit agrega un apunte al debe en moneda base y transacción.
func (j *Journal) Debit(accountID, description, currency string, rate, amountTx, amountBase decimal.Decimal) error {
	return j.AddLine(JournalLine{
		AccountID:   accountID,
		Description: description,
		Currency:    currency,
		FXRate:      rate,
		DebitTx:     money.Amount(amountTx),
		DebitBase:   money.Amount(amountBase),
	})
}

// Credit agrega un apunte al haber en moneda base y transacción.
func (j *Journal) Credit(accountID, description, currency string, rate, amountTx, amountBase decimal.Decimal) error {
	return j.AddLine(JournalLine{
		AccountID:   accountID,
		Description: description,
		Currency:    currency,
		FXRate:      rate,
		CreditTx:    money.Amount(amountTx),
		CreditBase:  money.Amount(amountBase),
	})
}

// Totals suma débitos y créditos en moneda base.
func (j *Journal) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range j.Lines {
		debit = debit.Add(l.DebitBase)
		credit = credit.Add(l.CreditBase)
	}
	return debit, credit
}

// IsBalanced compara totales redondeados a céntimos.
func (j *Journal) IsBalanced() bool {
	d, c := j.Totals()
	return money.Amount(d).Equal(money.Amount(c))
}

// MarkPosted fija número, estado y sello de auditoría.
func (j *Journal) MarkPosted(number, byUser string, at time.Time) {
	j.Number = number
	j.State = JournalPosted
	j.PostedAt = &at
	j.PostedBy = byUser
}

// Effect devuelve débito - crédito del apunte en (tx, base).
func (l *JournalLine) Effect() (tx, base decimal.Decimal) {
	return l.DebitTx.Sub(l.CreditTx), l.DebitBase.Sub(l.CreditBase)
}
