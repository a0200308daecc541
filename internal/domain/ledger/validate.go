// Package ledger contiene las reglas puras de validación de asientos.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/money"
)

// ValidateForPosting revisa todas las reglas y devuelve todas las violaciones
// juntas (nil si el asiento se puede contabilizar). period es el periodo que
// cubre la fecha del asiento, o nil si no existe; accounts indexa por ID las
// cuentas referenciadas por las líneas.
func ValidateForPosting(j *entity.Journal, period *entity.FiscalPeriod, accounts map[string]*entity.Account) *domain.ValidationError {
	var vs []domain.Violation
	add := func(line int, format string, args ...any) {
		vs = append(vs, domain.Violation{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case period == nil:
		add(0, "no hay periodo contable para la fecha %s", j.Date.Format("2006-01-02"))
	case period.Closed:
		add(0, "el periodo %s está cerrado", period.Name)
	}
	if len(j.Lines) == 0 {
		add(0, "el asiento no tiene líneas")
	}

	for i := range j.Lines {
		l := &j.Lines[i]
		n := l.LineNo
		if n == 0 {
			n = i + 1
		}
		acc := accounts[l.AccountID]
		switch {
		case acc == nil:
			add(n, "cuenta %q no existe", l.AccountID)
		case acc.CompanyID != j.CompanyID:
			add(n, "la cuenta %s pertenece a otra entidad", acc.Number)
		case !acc.IsActive:
			add(n, "la cuenta %s está inactiva", acc.Number)
		case !acc.IsPostable:
			add(n, "la cuenta %s es de resumen y no admite apuntes", acc.Number)
		}
		checkSides(l, n, add)
	}

	if len(j.Lines) > 0 {
		d, c := j.Totals()
		if !money.Amount(d).Equal(money.Amount(c)) {
			add(0, "débito %s distinto de crédito %s", money.Amount(d).StringFixed(2), money.Amount(c).StringFixed(2))
		}
	}

	if len(vs) == 0 {
		return nil
	}
	return &domain.ValidationError{Err: domain.ErrJournalInvalid, Violations: vs}
}

func checkSides(l *entity.JournalLine, n int, add func(int, string, ...any)) {
	for _, v := range []decimal.Decimal{l.DebitTx, l.CreditTx, l.DebitBase, l.CreditBase} {
		if v.IsNegative() {
			add(n, "importes negativos no permitidos")
			return
		}
	}
	debit := l.DebitTx.IsPositive() || l.DebitBase.IsPositive()
	credit := l.CreditTx.IsPositive() || l.CreditBase.IsPositive()
	switch {
	case debit && credit:
		add(n, "la línea tiene débito y crédito a la vez")
	case !debit && !credit:
		add(n, "la línea no tiene débito ni crédito")
	}
}

// AssertBalanced comprueba solo el cuadre (débito base == crédito base).
func AssertBalanced(j *entity.Journal) error {
	if j.IsBalanced() {
		return nil
	}
	d, c := j.Totals()
	return domain.Invalid(domain.ErrUnbalanced, "débito %s, crédito %s", money.Amount(d).StringFixed(2), money.Amount(c).StringFixed(2))
}
