package posting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appfx "github.com/jhoicas/erp-posting/internal/application/fx"
	appinventory "github.com/jhoicas/erp-posting/internal/application/inventory"
	appledger "github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/inventory"
	domainledger "github.com/jhoicas/erp-posting/internal/domain/ledger"
	"github.com/jhoicas/erp-posting/internal/domain/money"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// PostSalesInvoice contabiliza una factura (o nota de crédito) de venta.
// Todo ocurre en una transacción con el documento bloqueado: cualquier
// configuración faltante, stock insuficiente o descuadre deja la base intacta.
func (e *Engine) PostSalesInvoice(ctx context.Context, documentID, byUser string) (*SalesResult, error) {
	var res *SalesResult
	err := e.txRunner.Run(ctx, func(r repository.Repos) error {
		out, err := e.PostSalesInvoiceInTx(ctx, r, documentID, byUser)
		if err != nil {
			return err
		}
		res = out
		return nil
	})
	if err != nil {
		e.log.Warn().Err(err).Str("document_id", documentID).Msg("contabilización de venta rechazada")
		return nil, err
	}
	e.log.Info().
		Str("company_id", res.Document.CompanyID).
		Str("document_id", res.Document.ID).
		Str("invoice_no", res.Document.InvoiceNo).
		Str("journal_no", res.Journal.Number).
		Str("total_base", res.Document.TotalBase.StringFixed(2)).
		Msg("factura de venta contabilizada")
	return res, nil
}

// PostSalesInvoiceInTx igual que PostSalesInvoice usando la transacción del caller.
func (e *Engine) PostSalesInvoiceInTx(ctx context.Context, r repository.Repos, documentID, byUser string) (*SalesResult, error) {
	now := e.now()

	doc, err := r.SalesDocuments.GetForUpdate(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("lock sales document: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.IsPosted() {
		return nil, domain.Invalid(domain.ErrAlreadyPosted, "documento %s", doc.InvoiceNo)
	}
	if len(doc.Lines) == 0 {
		return nil, &domain.ValidationError{Err: domain.ErrNoLines}
	}
	if doc.State != entity.SalesInvoice {
		return nil, domain.Invalid(domain.ErrInvalidTransition, "%s -> %s", doc.State, entity.SalesPosted)
	}

	company, err := r.Companies.GetByID(ctx, doc.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	debtor, err := r.Debtors.GetByID(ctx, doc.DebtorID)
	if err != nil {
		return nil, err
	}
	if debtor == nil {
		return nil, domain.Invalid(domain.ErrNotFound, "cliente %s", doc.DebtorID)
	}
	var debtorGroup *entity.DebtorGroup
	if debtor.GroupID != "" {
		if debtorGroup, err = r.Debtors.GetGroup(ctx, debtor.GroupID); err != nil {
			return nil, err
		}
	}

	rate, err := e.rateFor(ctx, company, doc.Date, doc.Currency)
	if err != nil {
		return nil, err
	}
	cur := doc.Currency
	if cur == "" {
		cur = company.BaseCurrency
	}

	ref := fmt.Sprintf("Factura de venta %s", doc.InvoiceNo)
	if doc.DocType == entity.DocCreditNote {
		ref = fmt.Sprintf("Nota de crédito %s", doc.InvoiceNo)
	}
	j := entity.NewDraftJournal(uuid.New().String(), company.ID, doc.Date, ref, now)

	netTx, vatTx := decimal.Zero, decimal.Zero
	netBase, vatBase := decimal.Zero, decimal.Zero

	for i := range doc.Lines {
		line := &doc.Lines[i]
		lc, err := resolveLine(ctx, r, line.LineNo, line.ItemID, line.VatCodeID,
			func(g *entity.ItemGroup) string { return g.DefaultSalesVatCodeID }, debtor.VatArea)
		if err != nil {
			return nil, err
		}
		desc := line.Description
		if desc == "" {
			desc = lc.item.Name
		}

		lineNetTx := line.NetTx()
		lineNetBase := appfx.ToBase(lineNetTx, rate)

		if lc.group.SalesAccountID == "" {
			return nil, domain.MissingConfig("el grupo %s no tiene cuenta de ventas", lc.group.Name)
		}
		if err := post(j, false, doc.DocType, lc.group.SalesAccountID, desc, cur, rate, lineNetTx, lineNetBase); err != nil {
			return nil, err
		}

		if lc.vat != nil {
			lineVatTx := money.Amount(lineNetTx.Mul(lc.vat.Rate))
			lineVatBase := appfx.ToBase(lineVatTx, rate)
			if !lineVatTx.IsZero() {
				if lc.vat.OutputVatAccountID == "" {
					return nil, domain.MissingConfig("el código de IVA %s no tiene cuenta de IVA repercutido", lc.vat.Code)
				}
				if err := post(j, false, doc.DocType, lc.vat.OutputVatAccountID, "IVA "+lc.vat.Code, cur, rate, lineVatTx, lineVatBase); err != nil {
					return nil, err
				}
			}
			vatTx = vatTx.Add(lineVatTx)
			vatBase = vatBase.Add(lineVatBase)
		}

		if lc.item.IsStockItem {
			if err := e.postSalesStock(ctx, r, j, doc, line, lc, company.BaseCurrency, byUser); err != nil {
				return nil, err
			}
		}

		netTx = netTx.Add(lineNetTx)
		netBase = netBase.Add(lineNetBase)
	}

	grossTx := money.Amount(netTx.Add(vatTx))
	grossBase := money.Amount(netBase.Add(vatBase))

	arAccount := company.DefaultARAccountID
	termsDays := 0
	if debtorGroup != nil {
		if debtorGroup.ARAccountID != "" {
			arAccount = debtorGroup.ARAccountID
		}
		termsDays = debtorGroup.PaymentTermsDays
	}
	if arAccount == "" {
		return nil, domain.MissingConfig("no hay cuenta de deudores (AR) para el cliente %s", debtor.Number)
	}
	if err := post(j, true, doc.DocType, arAccount, debtor.Name, cur, rate, grossTx, grossBase); err != nil {
		return nil, err
	}

	if err := domainledger.AssertBalanced(j); err != nil {
		return nil, err
	}
	if err := r.Journals.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	posted, err := appledger.PostInTx(ctx, r, j.ID, byUser, now)
	if err != nil {
		return nil, err
	}

	sign := doc.DocType.Sign()
	oi := &entity.OpenItem{
		ID:              uuid.New().String(),
		CompanyID:       company.ID,
		Kind:            entity.OpenItemAR,
		DebtorID:        debtor.ID,
		SalesDocumentID: doc.ID,
		JournalID:       posted.ID,
		Currency:        cur,
		OriginalTx:      grossTx.Mul(sign),
		OriginalBase:    grossBase.Mul(sign),
		RemainingTx:     grossTx.Mul(sign),
		RemainingBase:   grossBase.Mul(sign),
		DueDate:         dueDate(doc.Date, termsDays),
		CreatedAt:       now,
	}
	if err := r.OpenItems.Create(ctx, oi); err != nil {
		return nil, fmt.Errorf("create open item: %w", err)
	}

	if err := doc.TransitionTo(entity.SalesPosted); err != nil {
		return nil, err
	}
	doc.PostedJournalID = posted.ID
	doc.PostedAt = &now
	doc.PostedBy = byUser
	doc.TotalNetTx = money.Amount(netTx)
	doc.TotalVatTx = money.Amount(vatTx)
	doc.TotalTx = grossTx
	doc.TotalBase = grossBase
	doc.UpdatedAt = now
	if err := r.SalesDocuments.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update sales document: %w", err)
	}
	return &SalesResult{Document: doc, Journal: posted, OpenItem: oi}, nil
}

// postSalesStock registra costo de ventas e inventario de una línea de stock.
// Factura: consume FIFO y lleva el costo a COGS. Nota de crédito: devuelve la
// cantidad como capa nueva al costo de compra del artículo.
func (e *Engine) postSalesStock(
	ctx context.Context,
	r repository.Repos,
	j *entity.Journal,
	doc *entity.SalesDocument,
	line *entity.SalesLine,
	lc *lineContext,
	baseCurrency, byUser string,
) error {
	if lc.group.InventoryAccountID == "" || lc.group.COGSAccountID == "" {
		return domain.MissingConfig("el grupo %s necesita cuenta de inventario y de costo de ventas", lc.group.Name)
	}
	qty := money.Qty(line.Qty)
	if !qty.IsPositive() {
		return nil
	}
	now := e.now()
	one := decimal.NewFromInt(1)

	if doc.DocType == entity.DocCreditNote {
		unitCost := money.Cost(lc.item.PurchaseCost)
		value := money.Amount(qty.Mul(unitCost))
		if _, err := appinventory.ReceiveInTx(ctx, r.Layers, appinventory.ReceiveInput{
			CompanyID:    doc.CompanyID,
			ItemID:       lc.item.ID,
			Qty:          qty,
			UnitCostBase: unitCost,
			SalesLineID:  line.ID,
			At:           now,
		}); err != nil {
			return err
		}
		if !value.IsZero() {
			if err := j.Debit(lc.group.InventoryAccountID, "Devolución "+lc.item.Name, baseCurrency, one, value, value); err != nil {
				return err
			}
			if err := j.Credit(lc.group.COGSAccountID, "Devolución "+lc.item.Name, baseCurrency, one, value, value); err != nil {
				return err
			}
		}
		return r.StockMoves.Create(ctx, &entity.StockMove{
			ID:           uuid.New().String(),
			CompanyID:    doc.CompanyID,
			ItemID:       lc.item.ID,
			Qty:          qty,
			UnitCostBase: unitCost,
			SalesLineID:  line.ID,
			CreatedAt:    now,
			CreatedBy:    byUser,
		})
	}

	cs, err := appinventory.ConsumeInTx(ctx, r.Layers, doc.CompanyID, lc.item.ID, qty)
	if err != nil {
		return err
	}
	cogs := inventory.TotalCost(cs)
	if !cogs.IsZero() {
		if err := j.Debit(lc.group.COGSAccountID, "Costo de ventas "+lc.item.Name, baseCurrency, one, cogs, cogs); err != nil {
			return err
		}
		if err := j.Credit(lc.group.InventoryAccountID, "Salida de inventario "+lc.item.Name, baseCurrency, one, cogs, cogs); err != nil {
			return err
		}
	}
	return r.StockMoves.Create(ctx, &entity.StockMove{
		ID:           uuid.New().String(),
		CompanyID:    doc.CompanyID,
		ItemID:       lc.item.ID,
		Qty:          qty.Neg(),
		UnitCostBase: money.Cost(cogs.Div(qty)),
		SalesLineID:  line.ID,
		CreatedAt:    now,
		CreatedBy:    byUser,
	})
}
