// Package posting convierte facturas de venta y compra en asientos
// contabilizados, movimientos FIFO y partidas abiertas, todo en una única
// transacción.
package posting

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// RateResolver puerto del resolvedor de tasas (ver fx.Resolver).
type RateResolver interface {
	GetRate(ctx context.Context, companyID string, date time.Time, base, quote string) (decimal.Decimal, error)
}

// Engine motor de contabilización de documentos.
type Engine struct {
	txRunner ports.TxRunner
	rates    RateResolver
	log      zerolog.Logger
	now      func() time.Time
}

// NewEngine construye el motor.
func NewEngine(txRunner ports.TxRunner, rates RateResolver, log zerolog.Logger) *Engine {
	return &Engine{txRunner: txRunner, rates: rates, log: log, now: time.Now}
}

// SalesResult resultado de contabilizar una factura de venta.
type SalesResult struct {
	Document *entity.SalesDocument
	Journal  *entity.Journal
	OpenItem *entity.OpenItem
}

// PurchaseResult resultado de contabilizar una factura de compra.
type PurchaseResult struct {
	Document *entity.PurchaseDocument
	Journal  *entity.Journal
	OpenItem *entity.OpenItem
}

func (e *Engine) rateFor(ctx context.Context, company *entity.Company, date time.Time, docCurrency string) (decimal.Decimal, error) {
	if docCurrency == "" || docCurrency == company.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}
	return e.rates.GetRate(ctx, company.ID, date, company.BaseCurrency, docCurrency)
}

// lineContext artículo, grupo y código de IVA efectivos de una línea.
type lineContext struct {
	item  *entity.Item
	group *entity.ItemGroup
	vat   *entity.VatCode
}

// resolveLine carga artículo y grupo, y resuelve el código de IVA: el de la
// línea o, si falta, el del grupo (defaultVat elige venta o compra). El código
// debe estar permitido para el área de IVA de la contraparte.
func resolveLine(
	ctx context.Context,
	r repository.Repos,
	lineNo int,
	itemID, lineVatID string,
	defaultVat func(*entity.ItemGroup) string,
	area entity.VatArea,
) (*lineContext, error) {
	if itemID == "" {
		return nil, domain.Invalid(domain.ErrInvalidInput, "línea %d sin artículo", lineNo)
	}
	item, err := r.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.Invalid(domain.ErrNotFound, "línea %d: artículo %s", lineNo, itemID)
	}
	if item.GroupID == "" {
		return nil, domain.MissingConfig("el artículo %s no tiene grupo", item.Number)
	}
	group, err := r.Items.GetGroup(ctx, item.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.MissingConfig("el grupo del artículo %s no existe", item.Number)
	}

	lc := &lineContext{item: item, group: group}
	vatID := lineVatID
	if vatID == "" {
		vatID = defaultVat(group)
	}
	if vatID == "" {
		return lc, nil
	}
	vat, err := r.VatCodes.GetByID(ctx, vatID)
	if err != nil {
		return nil, err
	}
	if vat == nil {
		return nil, domain.MissingConfig("código de IVA %s no existe", vatID)
	}
	if !vat.AllowedFor(area) {
		return nil, domain.Invalid(domain.ErrVatAreaMismatch, "línea %d: código %s no permitido para el área %q", lineNo, vat.Code, area)
	}
	lc.vat = vat
	return lc, nil
}

// post agrega el apunte al lado natural (debe si debitSide) o al contrario
// cuando el documento es una nota de crédito. Importes en cero no generan
// apunte (líneas con descuento total).
func post(j *entity.Journal, debitSide bool, docType entity.DocType, accountID, description, currency string, rate, amountTx, amountBase decimal.Decimal) error {
	if amountTx.IsZero() && amountBase.IsZero() {
		return nil
	}
	if docType == entity.DocCreditNote {
		debitSide = !debitSide
	}
	if amountTx.IsNegative() || amountBase.IsNegative() {
		debitSide = !debitSide
		amountTx, amountBase = amountTx.Neg(), amountBase.Neg()
	}
	if debitSide {
		return j.Debit(accountID, description, currency, rate, amountTx, amountBase)
	}
	return j.Credit(accountID, description, currency, rate, amountTx, amountBase)
}

func dueDate(date time.Time, termsDays int) time.Time {
	return entity.DateOnly(date).AddDate(0, 0, termsDays)
}
