package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/money"
)

// OpenItemKind cuenta por cobrar o por pagar.
type OpenItemKind string

const (
	OpenItemAR OpenItemKind = "AR"
	OpenItemAP OpenItemKind = "AP"
)

// OpenItem saldo pendiente de una factura contabilizada.
// Original* es fijo; Remaining* solo lo modifican las liquidaciones.
type OpenItem struct {
	ID                 string
	CompanyID          string
	Kind               OpenItemKind
	DebtorID           string
	CreditorID         string
	SalesDocumentID    string
	PurchaseDocumentID string
	JournalID          string
	Currency           string
	OriginalTx         decimal.Decimal
	OriginalBase       decimal.Decimal
	RemainingTx        decimal.Decimal
	RemainingBase      decimal.Decimal
	DueDate            time.Time
	CreatedAt          time.Time
}

// IsClosed indica si no queda saldo en ninguna de las dos monedas.
func (o *OpenItem) IsClosed() bool {
	return o.RemainingTx.IsZero() && o.RemainingBase.IsZero()
}

// Apply descuenta una liquidación del saldo pendiente.
// El importe debe tener el signo del saldo y no superarlo en valor absoluto;
// con saldo cero se rechaza cualquier liquidación. Los residuos menores a
// 0.01 quedan en cero.
func (o *OpenItem) Apply(amountTx, amountBase decimal.Decimal) error {
	if o.IsClosed() {
		return domain.Invalid(domain.ErrOpenItemClosed, "partida %s", o.ID)
	}
	if amountTx.IsZero() && amountBase.IsZero() {
		return &domain.ValidationError{Err: domain.ErrInvalidSettlementAmount}
	}
	if err := checkAmount("tx", amountTx, o.RemainingTx); err != nil {
		return err
	}
	if err := checkAmount("base", amountBase, o.RemainingBase); err != nil {
		return err
	}
	o.RemainingTx = money.Snap(o.RemainingTx.Sub(amountTx))
	o.RemainingBase = money.Snap(o.RemainingBase.Sub(amountBase))
	return nil
}

func checkAmount(label string, amount, remaining decimal.Decimal) error {
	if amount.IsZero() {
		// una moneda puede quedar sin importe si la otra lo lleva (ajustes de diferencia de cambio)
		return nil
	}
	if remaining.IsZero() || amount.Sign() != remaining.Sign() {
		return domain.Invalid(domain.ErrInvalidSettlementAmount, "importe %s %s frente a saldo %s", label, amount, remaining)
	}
	if amount.Abs().GreaterThan(remaining.Abs()) {
		return domain.Invalid(domain.ErrOverSettlement, "importe %s %s supera el saldo %s", label, amount, remaining)
	}
	return nil
}

// Settlement aplicación de un pago (apunte de diario) contra una partida abierta.
// SettledAt nulo = pendiente; una vez aplicado no se vuelve a aplicar.
type Settlement struct {
	ID                   string
	CompanyID            string
	OpenItemID           string
	PaymentJournalLineID string
	AmountTx             decimal.Decimal
	AmountBase           decimal.Decimal
	SettledAt            *time.Time
	SettledBy            string
	CreatedAt            time.Time
}

// IsApplied indica si ya se aplicó.
func (s *Settlement) IsApplied() bool { return s.SettledAt != nil }

// ExchangeRate tasa para una fecha: 1 Base = Rate * Quote.
// CompanyID vacío = tasa global.
type ExchangeRate struct {
	ID        string
	CompanyID string
	Date      time.Time
	Base      string
	Quote     string
	Rate      decimal.Decimal
	Source    string
	FetchedAt time.Time
}

// Fuentes de tasas.
const (
	RateSourceECB    = "ECB"
	RateSourceManual = "MANUAL"
)
