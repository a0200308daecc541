package posting_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/application/documents"
	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/posting"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/infrastructure/memory"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store  *memory.Store
	docs   *documents.Service
	engine *posting.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	memory.SeedDemo(s, 2024)
	s.PutRate(entity.ExchangeRate{
		ID: "eur", Date: day, Base: "EUR", Quote: "DKK", Rate: d("7.5"), Source: entity.RateSourceECB,
	})
	s.PutLayer(entity.InventoryLayer{
		ID: "L1", CompanyID: memory.DemoCompanyID, ItemID: memory.DemoStockItem,
		QtyIn: d("10"), QtyRemaining: d("10"), UnitCostBase: d("40"), CreatedAt: day,
	})
	return &fixture{
		store:  s,
		docs:   documents.NewService(s),
		engine: posting.NewEngine(s, fx.NewResolver(s.Repos().Rates, nil), zerolog.Nop()),
	}
}

// salesInvoice crea una factura de venta (ya numerada) con las líneas dadas.
func (f *fixture) salesInvoice(t *testing.T, debtorID, currency string, docType entity.DocType, lines ...documents.LineInput) *entity.SalesDocument {
	t.Helper()
	ctx := context.Background()
	doc, err := f.docs.CreateSales(ctx, documents.CreateSalesInput{
		CompanyID: memory.DemoCompanyID, DebtorID: debtorID, DocType: docType,
		State: entity.SalesInvoice, Date: day, Currency: currency,
	})
	require.NoError(t, err)
	for _, l := range lines {
		doc, err = f.docs.AddSalesLine(ctx, doc.ID, l)
		require.NoError(t, err)
	}
	return doc
}

func service(qty string) documents.LineInput {
	return documents.LineInput{ItemID: memory.DemoServiceItem, Qty: d(qty)}
}

func lamp(qty string) documents.LineInput {
	return documents.LineInput{ItemID: memory.DemoStockItem, Qty: d(qty)}
}

func linesOn(j *entity.Journal, accountID string) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range j.Lines {
		if l.AccountID == accountID {
			debit = debit.Add(l.DebitBase)
			credit = credit.Add(l.CreditBase)
		}
	}
	return debit, credit
}

// ─── Ventas ──────────────────────────────────────────────────────────────────

func TestPostSales_FacturaDeServicioEnDKK(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocInvoice, service("1"))

	res, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	j := res.Journal
	assert.True(t, j.IsPosted())
	assert.Equal(t, "J-00001", j.Number)
	assert.True(t, j.IsBalanced())
	require.Len(t, j.Lines, 3)

	_, sales := linesOn(j, memory.DemoAccountSales)
	_, vat := linesOn(j, memory.DemoAccountOutputVat)
	ar, _ := linesOn(j, memory.DemoAccountAR)
	assert.Equal(t, "200.00", sales.StringFixed(2))
	assert.Equal(t, "50.00", vat.StringFixed(2))
	assert.Equal(t, "250.00", ar.StringFixed(2))

	oi := res.OpenItem
	assert.Equal(t, entity.OpenItemAR, oi.Kind)
	assert.Equal(t, "250.00", oi.OriginalBase.StringFixed(2))
	assert.Equal(t, "250.00", oi.RemainingTx.StringFixed(2))
	assert.Equal(t, day.AddDate(0, 0, 14), oi.DueDate)

	assert.Equal(t, entity.SalesPosted, res.Document.State)
	assert.Equal(t, j.ID, res.Document.PostedJournalID)
	assert.Equal(t, "250.00", res.Document.TotalBase.StringFixed(2))
	assert.Len(t, f.store.OpenItemsOf(doc.ID), 1)
}

func TestPostSales_DobleContabilizacionRechazada(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocInvoice, service("1"))
	ctx := context.Background()

	_, err := f.engine.PostSalesInvoice(ctx, doc.ID, "u1")
	require.NoError(t, err)

	_, err = f.engine.PostSalesInvoice(ctx, doc.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrAlreadyPosted)
	assert.Equal(t, 1, f.store.JournalCount())
	assert.Len(t, f.store.OpenItemsOf(doc.ID), 1)
}

func TestPostSales_ArticuloDeStockConsumeFIFO(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocInvoice, lamp("3"))

	res, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	cogs, _ := linesOn(res.Journal, memory.DemoAccountCOGS)
	_, inv := linesOn(res.Journal, memory.DemoAccountInventory)
	assert.Equal(t, "120.00", cogs.StringFixed(2))
	assert.Equal(t, "120.00", inv.StringFixed(2))
	assert.True(t, res.Journal.IsBalanced())

	layer, _ := f.store.Layer("L1")
	assert.True(t, d("7").Equal(layer.QtyRemaining))
	moves := f.store.StockMoves()
	require.Len(t, moves, 1)
	assert.True(t, d("-3").Equal(moves[0].Qty))
}

func free(l documents.LineInput) documents.LineInput {
	l.Discount = d("1")
	return l
}

func TestPostSales_LineaGratisNoGeneraApunteDeIngreso(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocInvoice, service("1"), free(service("1")))

	res, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	require.Len(t, res.Journal.Lines, 3)
	for _, l := range res.Journal.Lines {
		assert.False(t, l.DebitTx.IsZero() && l.CreditTx.IsZero(), "apunte %d sin importe", l.LineNo)
	}
	_, sales := linesOn(res.Journal, memory.DemoAccountSales)
	assert.Equal(t, "200.00", sales.StringFixed(2))
	assert.Equal(t, "250.00", res.OpenItem.OriginalTx.StringFixed(2))
}

func TestPostSales_ArticuloDeStockGratisIgualLlevaCosto(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocInvoice, service("1"), free(lamp("2")))

	res, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	require.Len(t, res.Journal.Lines, 5)
	_, sales := linesOn(res.Journal, memory.DemoAccountSales)
	cogs, _ := linesOn(res.Journal, memory.DemoAccountCOGS)
	_, inv := linesOn(res.Journal, memory.DemoAccountInventory)
	assert.Equal(t, "200.00", sales.StringFixed(2))
	assert.Equal(t, "80.00", cogs.StringFixed(2))
	assert.Equal(t, "80.00", inv.StringFixed(2))
	assert.True(t, res.Journal.IsBalanced())

	layer, _ := f.store.Layer("L1")
	assert.True(t, d("8").Equal(layer.QtyRemaining))
}

func TestPostPurchase_LineaGratisCreaCapaSinCosto(t *testing.T) {
	f := newFixture(t)
	doc := purchaseInvoice(t, f, entity.DocInvoice, lamp("10"), free(lamp("2")))

	res, err := f.engine.PostPurchaseInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	for _, l := range res.Journal.Lines {
		assert.False(t, l.DebitTx.IsZero() && l.CreditTx.IsZero(), "apunte %d sin importe", l.LineNo)
	}
	inv, _ := linesOn(res.Journal, memory.DemoAccountInventory)
	assert.Equal(t, "400.00", inv.StringFixed(2))
	assert.Len(t, f.store.LayersOf(memory.DemoStockItem), 3)
}

func TestPostSales_StockInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocInvoice, service("1"), lamp("11"))

	_, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 0, f.store.JournalCount())
	assert.Empty(t, f.store.OpenItemsOf(doc.ID))
	assert.Empty(t, f.store.StockMoves())
	layer, _ := f.store.Layer("L1")
	assert.True(t, d("10").Equal(layer.QtyRemaining))
	series, _ := f.store.Series(memory.DemoCompanyID, memory.DemoSeriesJournal)
	assert.Equal(t, int64(1), series.NextNumber)

	got, err := f.docs.GetSales(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesInvoice, got.State)
}

func TestPostSales_MonedaExtranjeraSinIVA(t *testing.T) {
	f := newFixture(t)
	line := service("1")
	line.VatCodeID = memory.DemoVatExport
	doc := f.salesInvoice(t, memory.DemoExportDebtor, "EUR", entity.DocInvoice, line)

	res, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	require.Len(t, res.Journal.Lines, 2)
	assert.Equal(t, "EUR", res.OpenItem.Currency)
	assert.Equal(t, "200.00", res.OpenItem.OriginalTx.StringFixed(2))
	assert.Equal(t, "1500.00", res.OpenItem.OriginalBase.StringFixed(2))
	assert.True(t, res.Journal.IsBalanced())
}

func TestPostSales_CodigoDeIVANoPermitidoParaElArea(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoExportDebtor, "EUR", entity.DocInvoice, service("1"))

	_, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrVatAreaMismatch)
}

func TestPostSales_SinTasaDelDia(t *testing.T) {
	f := newFixture(t)
	line := service("1")
	line.VatCodeID = memory.DemoVatExport
	doc, err := f.docs.CreateSales(context.Background(), documents.CreateSalesInput{
		CompanyID: memory.DemoCompanyID, DebtorID: memory.DemoExportDebtor,
		State: entity.SalesInvoice, Date: day.AddDate(0, 0, 1), Currency: "EUR",
	})
	require.NoError(t, err)
	_, err = f.docs.AddSalesLine(context.Background(), doc.ID, line)
	require.NoError(t, err)

	_, err = f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestPostSales_SinCuentaDeDeudoresEsErrorDeConfiguracion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, err := f.store.Repos().Companies.GetByID(ctx, memory.DemoCompanyID)
	require.NoError(t, err)
	company.DefaultARAccountID = ""
	f.store.PutCompany(*company)
	f.store.PutDebtor(entity.Debtor{
		ID: "sin-grupo", CompanyID: memory.DemoCompanyID, Number: "30000", Name: "Sin grupo", VatArea: entity.VatAreaDK,
	})
	doc := f.salesInvoice(t, "sin-grupo", "", entity.DocInvoice, service("1"))

	_, err = f.engine.PostSalesInvoice(ctx, doc.ID, "u1")
	require.Error(t, err)
	assert.True(t, domain.IsConfig(err))
	assert.Equal(t, 0, f.store.JournalCount())
}

func TestPostSales_PedidoNoSeContabiliza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, err := f.docs.CreateSales(ctx, documents.CreateSalesInput{
		CompanyID: memory.DemoCompanyID, DebtorID: memory.DemoDebtor, State: entity.SalesOrder, Date: day,
	})
	require.NoError(t, err)
	_, err = f.docs.AddSalesLine(ctx, doc.ID, service("1"))
	require.NoError(t, err)

	_, err = f.engine.PostSalesInvoice(ctx, doc.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestPostSales_SinLineas(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocInvoice)

	_, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrNoLines)
}

func TestPostSales_NotaDeCreditoDevuelveStock(t *testing.T) {
	f := newFixture(t)
	doc := f.salesInvoice(t, memory.DemoDebtor, "", entity.DocCreditNote, lamp("1"))

	res, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	sales, _ := linesOn(res.Journal, memory.DemoAccountSales)
	_, ar := linesOn(res.Journal, memory.DemoAccountAR)
	inv, _ := linesOn(res.Journal, memory.DemoAccountInventory)
	assert.Equal(t, "100.00", sales.StringFixed(2))
	assert.Equal(t, "125.00", ar.StringFixed(2))
	assert.Equal(t, "40.00", inv.StringFixed(2))
	assert.True(t, res.Journal.IsBalanced())

	assert.Equal(t, "-125.00", res.OpenItem.OriginalBase.StringFixed(2))
	assert.Len(t, f.store.LayersOf(memory.DemoStockItem), 2)
}

// ─── Compras ─────────────────────────────────────────────────────────────────

func purchaseInvoice(t *testing.T, f *fixture, docType entity.DocType, lines ...documents.LineInput) *entity.PurchaseDocument {
	t.Helper()
	ctx := context.Background()
	doc, err := f.docs.CreatePurchase(ctx, documents.CreatePurchaseInput{
		CompanyID: memory.DemoCompanyID, CreditorID: memory.DemoCreditor, DocType: docType,
		State: entity.PurchaseInvoice, Date: day, SupplierInvoiceNo: "S-77",
	})
	require.NoError(t, err)
	for _, l := range lines {
		doc, err = f.docs.AddPurchaseLine(ctx, doc.ID, l)
		require.NoError(t, err)
	}
	return doc
}

func TestPostPurchase_CreaCapaYPartidaAP(t *testing.T) {
	f := newFixture(t)
	doc := purchaseInvoice(t, f, entity.DocInvoice, lamp("10"))

	res, err := f.engine.PostPurchaseInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	inv, _ := linesOn(res.Journal, memory.DemoAccountInventory)
	vat, _ := linesOn(res.Journal, memory.DemoAccountInputVat)
	_, ap := linesOn(res.Journal, memory.DemoAccountAP)
	assert.Equal(t, "400.00", inv.StringFixed(2))
	assert.Equal(t, "100.00", vat.StringFixed(2))
	assert.Equal(t, "500.00", ap.StringFixed(2))

	assert.Equal(t, entity.OpenItemAP, res.OpenItem.Kind)
	assert.Equal(t, memory.DemoCreditor, res.OpenItem.CreditorID)
	assert.Equal(t, "500.00", res.OpenItem.RemainingBase.StringFixed(2))
	assert.Equal(t, entity.PurchasePosted, res.Document.State)

	layers := f.store.LayersOf(memory.DemoStockItem)
	require.Len(t, layers, 2)
	var received *entity.InventoryLayer
	for i := range layers {
		if layers[i].PurchaseLineID != "" {
			received = &layers[i]
		}
	}
	require.NotNil(t, received)
	assert.True(t, d("10").Equal(received.QtyRemaining))
	assert.Equal(t, "40.0000", received.UnitCostBase.StringFixed(4))
}

func TestPostPurchase_ServicioVaAGastos(t *testing.T) {
	f := newFixture(t)
	line := service("2")
	line.Price = d("150")
	doc := purchaseInvoice(t, f, entity.DocInvoice, line)

	res, err := f.engine.PostPurchaseInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	exp, _ := linesOn(res.Journal, memory.DemoAccountExpense)
	assert.Equal(t, "300.00", exp.StringFixed(2))
	assert.Len(t, f.store.LayersOf(memory.DemoStockItem), 1)
}

func TestPostPurchase_NotaDeCreditoConsumeFIFOYDiferenciaAGastos(t *testing.T) {
	f := newFixture(t)
	line := lamp("2")
	line.Price = d("45")
	doc := purchaseInvoice(t, f, entity.DocCreditNote, line)

	res, err := f.engine.PostPurchaseInvoice(context.Background(), doc.ID, "u1")
	require.NoError(t, err)

	_, inv := linesOn(res.Journal, memory.DemoAccountInventory)
	_, exp := linesOn(res.Journal, memory.DemoAccountExpense)
	assert.Equal(t, "80.00", inv.StringFixed(2))
	assert.Equal(t, "10.00", exp.StringFixed(2))
	assert.True(t, res.Journal.IsBalanced())
	assert.Equal(t, "-112.50", res.OpenItem.OriginalBase.StringFixed(2))

	layer, _ := f.store.Layer("L1")
	assert.True(t, d("8").Equal(layer.QtyRemaining))
}

func TestPostPurchase_DobleContabilizacionRechazada(t *testing.T) {
	f := newFixture(t)
	doc := purchaseInvoice(t, f, entity.DocInvoice, service("1"))
	ctx := context.Background()

	_, err := f.engine.PostPurchaseInvoice(ctx, doc.ID, "u1")
	require.NoError(t, err)
	_, err = f.engine.PostPurchaseInvoice(ctx, doc.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrAlreadyPosted)
}
