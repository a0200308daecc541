package entity

import "time"

// AccountType tipo de cuenta del plan contable.
type AccountType string

const (
	AccountAsset     AccountType = "asset"
	AccountLiability AccountType = "liability"
	AccountEquity    AccountType = "equity"
	AccountIncome    AccountType = "income"
	AccountExpense   AccountType = "expense"
)

// Account nodo del plan de cuentas. Solo las hojas (IsPostable) reciben apuntes.
type Account struct {
	ID         string
	CompanyID  string
	Number     string
	Name       string
	Type       AccountType
	ParentID   string
	IsPostable bool
	IsActive   bool
}

// FiscalPeriod periodo contable; Closed impide contabilizar dentro de él.
type FiscalPeriod struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Closed    bool
}

// Covers indica si la fecha cae dentro del periodo (ambos extremos incluidos).
func (p *FiscalPeriod) Covers(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(p.StartDate)) && !day.After(DateOnly(p.EndDate))
}

// DateOnly trunca a la fecha (UTC).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
