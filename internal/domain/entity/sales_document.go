package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/money"
)

// SalesState estado del documento de venta.
type SalesState string

const (
	SalesOffer      SalesState = "offer"
	SalesOrder      SalesState = "order"
	SalesInvoice    SalesState = "invoice"
	SalesPosted     SalesState = "posted"
	SalesPartlyPaid SalesState = "partly_paid"
	SalesPaid       SalesState = "paid"
	SalesCredited   SalesState = "credited"
)

// DocType factura o nota de crédito.
type DocType string

const (
	DocInvoice    DocType = "invoice"
	DocCreditNote DocType = "credit_note"
)

// Sign +1 para facturas, -1 para notas de crédito.
func (t DocType) Sign() decimal.Decimal {
	if t == DocCreditNote {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// SalesDocument oferta, pedido o factura de venta.
type SalesDocument struct {
	ID        string
	CompanyID string
	DebtorID  string
	DocType   DocType
	State     SalesState
	Date      time.Time
	Currency  string

	OfferNo   string
	OrderNo   string
	InvoiceNo string

	CreditsDocumentID string // factura origen de una nota de crédito

	TotalNetTx      decimal.Decimal
	TotalVatTx      decimal.Decimal
	TotalTx         decimal.Decimal
	TotalBase       decimal.Decimal
	PostedJournalID string
	PostedAt        *time.Time
	PostedBy        string
	PaidAt          *time.Time
	PaidBy          string

	CreatedAt time.Time
	UpdatedAt time.Time
	Lines     []SalesLine
}

// SalesLine línea de venta. NetTx = qty * unit_price * (1 - discount).
type SalesLine struct {
	ID          string
	DocumentID  string
	LineNo      int
	ItemID      string
	Description string
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // fracción 0..1
	VatCodeID   string
}

// NetTx importe neto en moneda del documento.
func (l *SalesLine) NetTx() decimal.Decimal {
	return NetAmount(l.Qty, l.UnitPrice, l.Discount)
}

// NetAmount qty * precio * (1 - descuento) redondeado a céntimos.
func NetAmount(qty, price, discount decimal.Decimal) decimal.Decimal {
	return money.Amount(qty.Mul(price).Mul(decimal.NewFromInt(1).Sub(discount)))
}

// LineNoStep separación entre números de línea.
const LineNoStep = 10

// NextLineNo número para la siguiente línea.
func (d *SalesDocument) NextLineNo() int {
	max := 0
	for _, l := range d.Lines {
		if l.LineNo > max {
			max = l.LineNo
		}
	}
	return max + LineNoStep
}

// IsPosted indica si el documento ya pasó por la contabilización.
func (d *SalesDocument) IsPosted() bool {
	return d.PostedJournalID != "" || (d.State != SalesOffer && d.State != SalesOrder && d.State != SalesInvoice)
}

// SalesGuard precondición de una transición.
type SalesGuard func(d *SalesDocument) error

func requireSalesLines(d *SalesDocument) error {
	if len(d.Lines) == 0 {
		return &domain.ValidationError{Err: domain.ErrNoLines}
	}
	return nil
}

func requireInvoiceNo(d *SalesDocument) error {
	if err := requireSalesLines(d); err != nil {
		return err
	}
	if d.InvoiceNo == "" {
		return domain.Invalid(domain.ErrInvalidTransition, "la factura no tiene número asignado")
	}
	return nil
}

func noGuard(*SalesDocument) error { return nil }

// SalesTransitions transiciones permitidas desde un estado con su precondición.
func SalesTransitions(from SalesState) map[SalesState]SalesGuard {
	switch from {
	case SalesOffer:
		return map[SalesState]SalesGuard{SalesOrder: requireSalesLines}
	case SalesOrder:
		return map[SalesState]SalesGuard{SalesInvoice: requireSalesLines}
	case SalesInvoice:
		return map[SalesState]SalesGuard{SalesPosted: requireInvoiceNo}
	case SalesPosted:
		return map[SalesState]SalesGuard{
			SalesPartlyPaid: noGuard,
			SalesPaid:       noGuard,
			SalesCredited:   noGuard,
		}
	case SalesPartlyPaid:
		return map[SalesState]SalesGuard{
			SalesPaid:   noGuard,
			SalesPosted: noGuard,
		}
	}
	return nil
}

// TransitionTo valida y aplica una transición de estado.
func (d *SalesDocument) TransitionTo(to SalesState) error {
	guard, ok := SalesTransitions(d.State)[to]
	if !ok {
		return domain.Invalid(domain.ErrInvalidTransition, "%s -> %s", d.State, to)
	}
	if err := guard(d); err != nil {
		return err
	}
	d.State = to
	return nil
}
