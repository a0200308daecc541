package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/domain"
)

// PurchaseState estado del documento de compra: Order -> Invoice -> Posted.
type PurchaseState string

const (
	PurchaseOrder   PurchaseState = "order"
	PurchaseInvoice PurchaseState = "invoice"
	PurchasePosted  PurchaseState = "posted"
)

// PurchaseDocument pedido o factura de compra.
type PurchaseDocument struct {
	ID         string
	CompanyID  string
	CreditorID string
	DocType    DocType
	State      PurchaseState
	Date       time.Time
	Currency   string

	OrderNo           string
	InvoiceNo         string
	SupplierInvoiceNo string

	TotalNetTx      decimal.Decimal
	TotalVatTx      decimal.Decimal
	TotalTx         decimal.Decimal
	TotalBase       decimal.Decimal
	PostedJournalID string
	PostedAt        *time.Time
	PostedBy        string

	CreatedAt time.Time
	UpdatedAt time.Time
	Lines     []PurchaseLine
}

// PurchaseLine línea de compra.
type PurchaseLine struct {
	ID          string
	DocumentID  string
	LineNo      int
	ItemID      string
	Description string
	Qty         decimal.Decimal
	UnitCost    decimal.Decimal
	Discount    decimal.Decimal
	VatCodeID   string
}

// NetTx importe neto en moneda del documento.
func (l *PurchaseLine) NetTx() decimal.Decimal {
	return NetAmount(l.Qty, l.UnitCost, l.Discount)
}

// NextLineNo número para la siguiente línea.
func (d *PurchaseDocument) NextLineNo() int {
	max := 0
	for _, l := range d.Lines {
		if l.LineNo > max {
			max = l.LineNo
		}
	}
	return max + LineNoStep
}

// IsPosted indica si el documento ya fue contabilizado.
func (d *PurchaseDocument) IsPosted() bool {
	return d.PostedJournalID != "" || d.State == PurchasePosted
}

// PurchaseTransitions transiciones permitidas desde un estado.
func PurchaseTransitions(from PurchaseState) []PurchaseState {
	switch from {
	case PurchaseOrder:
		return []PurchaseState{PurchaseInvoice}
	case PurchaseInvoice:
		return []PurchaseState{PurchasePosted}
	}
	return nil
}

// TransitionTo valida y aplica una transición. Toda transición exige líneas.
func (d *PurchaseDocument) TransitionTo(to PurchaseState) error {
	allowed := false
	for _, s := range PurchaseTransitions(d.State) {
		if s == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.Invalid(domain.ErrInvalidTransition, "%s -> %s", d.State, to)
	}
	if len(d.Lines) == 0 {
		return &domain.ValidationError{Err: domain.ErrNoLines}
	}
	if to == PurchasePosted && d.InvoiceNo == "" {
		return domain.Invalid(domain.ErrInvalidTransition, "la factura de compra no tiene número asignado")
	}
	d.State = to
	return nil
}
