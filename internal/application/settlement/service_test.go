package settlement_test

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
	"github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/application/posting"
	"github.com/jhoicas/erp-posting/internal/application/settlement"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/infrastructure/memory"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memory.Store
	journals *ledger.JournalService
	svc      *settlement.Service
	doc      *entity.SalesDocument
	item     *entity.OpenItem
}

// newFixture contabiliza una factura de 250.00 DKK (200 + IVA 25 %).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	memory.SeedDemo(s, 2024)
	resolver := fx.NewResolver(s.Repos().Rates, nil)
	docs := documents.NewService(s)

	doc, err := docs.CreateSales(ctx, documents.CreateSalesInput{
		CompanyID: memory.DemoCompanyID, DebtorID: memory.DemoDebtor, State: entity.SalesInvoice, Date: day,
	})
	require.NoError(t, err)
	_, err = docs.AddSalesLine(ctx, doc.ID, documents.LineInput{ItemID: memory.DemoServiceItem, Qty: d("1")})
	require.NoError(t, err)
	res, err := posting.NewEngine(s, resolver, zerolog.Nop()).PostSalesInvoice(ctx, doc.ID, "u1")
	require.NoError(t, err)

	return &fixture{
		store:    s,
		journals: ledger.NewJournalService(s, resolver, zerolog.Nop()),
		svc:      settlement.NewService(s, zerolog.Nop()),
		doc:      res.Document,
		item:     res.OpenItem,
	}
}

// payment crea un cobro bancario y devuelve el ID del apunte al haber de deudores.
func (f *fixture) payment(t *testing.T, amount string) string {
	t.Helper()
	j, err := f.journals.CreateDraft(context.Background(), ledger.CreateJournalInput{
		CompanyID: memory.DemoCompanyID, Date: day, Reference: "Cobro",
		Lines: []ledger.LineInput{
			{AccountID: memory.DemoAccountBank, DebitTx: d(amount)},
			{AccountID: memory.DemoAccountAR, CreditTx: d(amount)},
		},
	})
	require.NoError(t, err)
	return j.Lines[1].ID
}

func (f *fixture) settlementFor(t *testing.T, lineID string) *entity.Settlement {
	t.Helper()
	st, err := f.svc.Create(context.Background(), settlement.CreateInput{
		CompanyID: memory.DemoCompanyID, OpenItemID: f.item.ID, PaymentJournalLineID: lineID,
	})
	require.NoError(t, err)
	return st
}

// ─── SettleAndSync ───────────────────────────────────────────────────────────

func TestSettleAndSync_PagoParcialYLuegoTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.settlementFor(t, f.payment(t, "100"))
	res, err := f.svc.SettleAndSync(ctx, first.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "150.00", res.OpenItem.RemainingTx.StringFixed(2))
	assert.Equal(t, "100.00", res.Settlement.AmountBase.StringFixed(2))
	require.NotNil(t, res.Settlement.SettledAt)
	require.NotNil(t, res.Document)
	assert.Equal(t, entity.SalesPartlyPaid, res.Document.State)

	second := f.settlementFor(t, f.payment(t, "150"))
	res, err = f.svc.SettleAndSync(ctx, second.ID, "u2")
	require.NoError(t, err)
	assert.True(t, res.OpenItem.IsClosed())
	assert.Equal(t, entity.SalesPaid, res.Document.State)
	assert.Equal(t, "u2", res.Document.PaidBy)
	require.NotNil(t, res.Document.PaidAt)
}

func TestSettle_ExcesoRechazadoSinCambios(t *testing.T) {
	f := newFixture(t)
	st := f.settlementFor(t, f.payment(t, "300"))

	_, err := f.svc.SettleAndSync(context.Background(), st.ID, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOverSettlement)

	items := f.store.OpenItemsOf(f.doc.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "250.00", items[0].RemainingBase.StringFixed(2))
	got, err := f.svc.Get(context.Background(), st.ID)
	require.NoError(t, err)
	assert.False(t, got.IsApplied())
}

func TestSettle_NoSeAplicaDosVeces(t *testing.T) {
	f := newFixture(t)
	st := f.settlementFor(t, f.payment(t, "50"))
	ctx := context.Background()

	_, err := f.svc.Settle(ctx, st.ID, "u1")
	require.NoError(t, err)
	_, err = f.svc.Settle(ctx, st.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)

	items := f.store.OpenItemsOf(f.doc.ID)
	assert.Equal(t, "200.00", items[0].RemainingBase.StringFixed(2))
}

func TestSettle_ImporteExplicito(t *testing.T) {
	f := newFixture(t)
	st, err := f.svc.Create(context.Background(), settlement.CreateInput{
		CompanyID: memory.DemoCompanyID, OpenItemID: f.item.ID, PaymentJournalLineID: f.payment(t, "250"),
		AmountTx: d("40"), AmountBase: d("40"),
	})
	require.NoError(t, err)

	res, err := f.svc.Settle(context.Background(), st.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "210.00", res.OpenItem.RemainingTx.StringFixed(2))
	assert.Nil(t, res.Document)
}

func TestSettle_PagoEnOtraMoneda(t *testing.T) {
	f := newFixture(t)
	j, err := f.journals.CreateDraft(context.Background(), ledger.CreateJournalInput{
		CompanyID: memory.DemoCompanyID, Date: day,
		Lines: []ledger.LineInput{
			{AccountID: memory.DemoAccountBank, Currency: "EUR", FXRate: d("0.134"), DebitTx: d("10")},
			{AccountID: memory.DemoAccountAR, Currency: "EUR", FXRate: d("0.134"), CreditTx: d("10")},
		},
	})
	require.NoError(t, err)
	st := f.settlementFor(t, j.Lines[1].ID)

	_, err = f.svc.Settle(context.Background(), st.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreate_PartidaDeOtraEntidad(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), settlement.CreateInput{
		CompanyID: "otra", OpenItemID: f.item.ID, PaymentJournalLineID: f.payment(t, "10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ApunteInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), settlement.CreateInput{
		CompanyID: memory.DemoCompanyID, OpenItemID: f.item.ID, PaymentJournalLineID: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_DatosIncompletos(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), settlement.CreateInput{CompanyID: memory.DemoCompanyID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── SyncSalesDocPaymentState ────────────────────────────────────────────────

func TestSync_TrasLiquidarSinSincronizar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.settlementFor(t, f.payment(t, "10"))

	res, err := f.svc.Settle(ctx, st.ID, "u1")
	require.NoError(t, err)
	assert.Nil(t, res.Document)

	doc, err := f.svc.SyncSalesDocPaymentState(ctx, f.doc.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SalesPartlyPaid, doc.State)

	// sin cambios de saldo la sincronización no hace nada
	doc, err = f.svc.SyncSalesDocPaymentState(ctx, f.doc.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SalesPartlyPaid, doc.State)
}

func TestSync_SinPartidaNoCambiaElEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	docs := documents.NewService(f.store)
	draft, err := docs.CreateSales(ctx, documents.CreateSalesInput{
		CompanyID: memory.DemoCompanyID, DebtorID: memory.DemoDebtor, Date: day,
	})
	require.NoError(t, err)

	doc, err := f.svc.SyncSalesDocPaymentState(ctx, draft.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SalesOffer, doc.State)
}

func TestSync_DocumentoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SyncSalesDocPaymentState(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── OpenItemsForDebtor ──────────────────────────────────────────────────────

func TestOpenItemsForDebtor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items, err := f.svc.OpenItemsForDebtor(ctx, memory.DemoCompanyID, memory.DemoDebtor)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, f.item.ID, items[0].ID)

	st := f.settlementFor(t, f.payment(t, "250"))
	_, err = f.svc.SettleAndSync(ctx, st.ID, "u1")
	require.NoError(t, err)

	items, err = f.svc.OpenItemsForDebtor(ctx, memory.DemoCompanyID, memory.DemoDebtor)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.svc.OpenItemsForDebtor(ctx, "otra", memory.DemoDebtor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
