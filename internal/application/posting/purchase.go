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

// PostPurchaseInvoice contabiliza una factura (o nota de crédito) de compra.
func (e *Engine) PostPurchaseInvoice(ctx context.Context, documentID, byUser string) (*PurchaseResult, error) {
	var res *PurchaseResult
	err := e.txRunner.Run(ctx, func(r repository.Repos) error {
		out, err := e.PostPurchaseInvoiceInTx(ctx, r, documentID, byUser)
		if err != nil {
			return err
		}
		res = out
		return nil
	})
	if err != nil {
		e.log.Warn().Err(err).Str("document_id", documentID).Msg("contabilización de compra rechazada")
		return nil, err
	}
	e.log.Info().
		Str("company_id", res.Document.CompanyID).
		Str("document_id", res.Document.ID).
		Str("invoice_no", res.Document.InvoiceNo).
		Str("journal_no", res.Journal.Number).
		Msg("factura de compra contabilizada")
	return res, nil
}

// PostPurchaseInvoiceInTx contabiliza usando la transacción del caller.
// Por línea: gasto (o inventario si es artículo de stock) al debe, IVA
// soportado al debe; al final la cuenta de proveedores (AP) al haber por el
// bruto. Los artículos de stock crean una capa FIFO al costo base de la línea.
func (e *Engine) PostPurchaseInvoiceInTx(ctx context.Context, r repository.Repos, documentID, byUser string) (*PurchaseResult, error) {
	now := e.now()

	doc, err := r.PurchaseDocuments.GetForUpdate(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("lock purchase document: %w", err)
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
	if doc.State != entity.PurchaseInvoice {
		return nil, domain.Invalid(domain.ErrInvalidTransition, "%s -> %s", doc.State, entity.PurchasePosted)
	}

	company, err := r.Companies.GetByID(ctx, doc.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	creditor, err := r.Creditors.GetByID(ctx, doc.CreditorID)
	if err != nil {
		return nil, err
	}
	if creditor == nil {
		return nil, domain.Invalid(domain.ErrNotFound, "proveedor %s", doc.CreditorID)
	}

	rate, err := e.rateFor(ctx, company, doc.Date, doc.Currency)
	if err != nil {
		return nil, err
	}
	cur := doc.Currency
	if cur == "" {
		cur = company.BaseCurrency
	}

	ref := fmt.Sprintf("Factura de compra %s", doc.InvoiceNo)
	if doc.DocType == entity.DocCreditNote {
		ref = fmt.Sprintf("Nota de crédito de compra %s", doc.InvoiceNo)
	}
	j := entity.NewDraftJournal(uuid.New().String(), company.ID, doc.Date, ref, now)

	netTx, vatTx := decimal.Zero, decimal.Zero
	netBase, vatBase := decimal.Zero, decimal.Zero

	for i := range doc.Lines {
		line := &doc.Lines[i]
		lc, err := resolveLine(ctx, r, line.LineNo, line.ItemID, line.VatCodeID,
			func(g *entity.ItemGroup) string { return g.DefaultPurchaseVatCodeID }, creditor.VatArea)
		if err != nil {
			return nil, err
		}
		desc := line.Description
		if desc == "" {
			desc = lc.item.Name
		}

		lineNetTx := line.NetTx()
		lineNetBase := appfx.ToBase(lineNetTx, rate)

		if lc.item.IsStockItem {
			if err := e.postPurchaseStock(ctx, r, j, doc, line, lc, desc, cur, company.BaseCurrency, rate, lineNetTx, lineNetBase, byUser); err != nil {
				return nil, err
			}
		} else {
			if lc.group.ExpenseAccountID == "" {
				return nil, domain.MissingConfig("el grupo %s no tiene cuenta de gastos", lc.group.Name)
			}
			if err := post(j, true, doc.DocType, lc.group.ExpenseAccountID, desc, cur, rate, lineNetTx, lineNetBase); err != nil {
				return nil, err
			}
		}

		if lc.vat != nil {
			lineVatTx := money.Amount(lineNetTx.Mul(lc.vat.Rate))
			lineVatBase := appfx.ToBase(lineVatTx, rate)
			if !lineVatTx.IsZero() {
				if lc.vat.InputVatAccountID == "" {
					return nil, domain.MissingConfig("el código de IVA %s no tiene cuenta de IVA soportado", lc.vat.Code)
				}
				if err := post(j, true, doc.DocType, lc.vat.InputVatAccountID, "IVA "+lc.vat.Code, cur, rate, lineVatTx, lineVatBase); err != nil {
					return nil, err
				}
			}
			vatTx = vatTx.Add(lineVatTx)
			vatBase = vatBase.Add(lineVatBase)
		}

		netTx = netTx.Add(lineNetTx)
		netBase = netBase.Add(lineNetBase)
	}

	grossTx := money.Amount(netTx.Add(vatTx))
	grossBase := money.Amount(netBase.Add(vatBase))

	if company.DefaultAPAccountID == "" {
		return nil, domain.MissingConfig("la entidad %s no tiene cuenta de proveedores (AP)", company.Name)
	}
	if err := post(j, false, doc.DocType, company.DefaultAPAccountID, creditor.Name, cur, rate, grossTx, grossBase); err != nil {
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
		ID:                 uuid.New().String(),
		CompanyID:          company.ID,
		Kind:               entity.OpenItemAP,
		CreditorID:         creditor.ID,
		PurchaseDocumentID: doc.ID,
		JournalID:          posted.ID,
		Currency:           cur,
		OriginalTx:         grossTx.Mul(sign),
		OriginalBase:       grossBase.Mul(sign),
		RemainingTx:        grossTx.Mul(sign),
		RemainingBase:      grossBase.Mul(sign),
		DueDate:            dueDate(doc.Date, 0),
		CreatedAt:          now,
	}
	if err := r.OpenItems.Create(ctx, oi); err != nil {
		return nil, fmt.Errorf("create open item: %w", err)
	}

	if err := doc.TransitionTo(entity.PurchasePosted); err != nil {
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
	if err := r.PurchaseDocuments.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update purchase document: %w", err)
	}
	return &PurchaseResult{Document: doc, Journal: posted, OpenItem: oi}, nil
}

// postPurchaseStock lleva una línea de stock a inventario. Factura: nueva capa
// FIFO al costo base unitario. Nota de crédito: consume FIFO, abona inventario
// al costo consumido y la diferencia con el importe devuelto va a gastos.
func (e *Engine) postPurchaseStock(
	ctx context.Context,
	r repository.Repos,
	j *entity.Journal,
	doc *entity.PurchaseDocument,
	line *entity.PurchaseLine,
	lc *lineContext,
	desc, cur, baseCurrency string,
	rate, netTx, netBase decimal.Decimal,
	byUser string,
) error {
	if lc.group.InventoryAccountID == "" {
		return domain.MissingConfig("el grupo %s no tiene cuenta de inventario", lc.group.Name)
	}
	qty := money.Qty(line.Qty)
	if !qty.IsPositive() {
		return domain.Invalid(domain.ErrInvalidInput, "línea %d: la cantidad de un artículo de stock debe ser positiva", line.LineNo)
	}
	now := e.now()

	if doc.DocType != entity.DocCreditNote {
		if err := post(j, true, entity.DocInvoice, lc.group.InventoryAccountID, desc, cur, rate, netTx, netBase); err != nil {
			return err
		}
		unitCost := money.Cost(netBase.Div(qty))
		if _, err := appinventory.ReceiveInTx(ctx, r.Layers, appinventory.ReceiveInput{
			CompanyID:      doc.CompanyID,
			ItemID:         lc.item.ID,
			Qty:            qty,
			UnitCostBase:   unitCost,
			PurchaseLineID: line.ID,
			At:             now,
		}); err != nil {
			return err
		}
		return r.StockMoves.Create(ctx, &entity.StockMove{
			ID:             uuid.New().String(),
			CompanyID:      doc.CompanyID,
			ItemID:         lc.item.ID,
			Qty:            qty,
			UnitCostBase:   unitCost,
			PurchaseLineID: line.ID,
			CreatedAt:      now,
			CreatedBy:      byUser,
		})
	}

	cs, err := appinventory.ConsumeInTx(ctx, r.Layers, doc.CompanyID, lc.item.ID, qty)
	if err != nil {
		return err
	}
	cost := inventory.TotalCost(cs)
	one := decimal.NewFromInt(1)
	if !cost.IsZero() {
		if err := j.Credit(lc.group.InventoryAccountID, desc, baseCurrency, one, cost, cost); err != nil {
			return err
		}
	}
	if diff := netBase.Sub(cost); !diff.IsZero() {
		if lc.group.ExpenseAccountID == "" {
			return domain.MissingConfig("el grupo %s no tiene cuenta de gastos para la diferencia de costo", lc.group.Name)
		}
		if err := post(j, false, entity.DocInvoice, lc.group.ExpenseAccountID, "Diferencia de costo "+lc.item.Name, baseCurrency, one, diff, diff); err != nil {
			return err
		}
	}
	return r.StockMoves.Create(ctx, &entity.StockMove{
		ID:             uuid.New().String(),
		CompanyID:      doc.CompanyID,
		ItemID:         lc.item.ID,
		Qty:            qty.Neg(),
		UnitCostBase:   money.Cost(cost.Div(qty)),
		PurchaseLineID: line.ID,
		CreatedAt:      now,
		CreatedBy:      byUser,
	})
}
