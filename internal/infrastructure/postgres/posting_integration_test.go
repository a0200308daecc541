package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/application/documents"
	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/inventory"
	"github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/application/posting"
	"github.com/jhoicas/erp-posting/internal/application/settlement"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/infrastructure/postgres"
)

var postingDay = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

// ledgerFixture entidad DKK con plan de cuentas, IVA 25 %, un servicio
// (200), una lámpara de stock con 10 unidades a costo 40 y un cliente a 14 días.
type ledgerFixture struct {
	pool      *pgxpool.Pool
	companyID string
	bank      string
	ar        string
	service   string
	lamp      string
	debtor    string

	docs     *documents.Service
	engine   *posting.Engine
	journals *ledger.JournalService
	settle   *settlement.Service
	fifo     *inventory.FIFOUseCase
}

func seedLedger(t *testing.T) *ledgerFixture {
	t.Helper()
	pool := testPool(t)
	companyID := seedCompany(t, pool)
	ctx := context.Background()
	exec := func(sql string, args ...any) {
		t.Helper()
		_, err := pool.Exec(ctx, sql, args...)
		require.NoError(t, err, sql)
	}

	id := func() string { return uuid.NewString() }
	f := &ledgerFixture{pool: pool, companyID: companyID, bank: id(), ar: id(), service: id(), lamp: id(), debtor: id()}
	sales, outVat, inventoryAcc, cogs, expense, ap := id(), id(), id(), id(), id(), id()

	for _, a := range []struct{ id, number, name, kind string }{
		{f.bank, "5800", "Bank", string(entity.AccountAsset)},
		{f.ar, "5600", "Deudores", string(entity.AccountAsset)},
		{inventoryAcc, "5500", "Inventario", string(entity.AccountAsset)},
		{ap, "6800", "Proveedores", string(entity.AccountLiability)},
		{outVat, "6901", "IVA repercutido", string(entity.AccountLiability)},
		{sales, "1000", "Ventas", string(entity.AccountIncome)},
		{cogs, "1300", "Costo de ventas", string(entity.AccountExpense)},
		{expense, "2200", "Gastos", string(entity.AccountExpense)},
	} {
		exec(`INSERT INTO accounts (id, company_id, number, name, type) VALUES ($1, $2, $3, $4, $5)`,
			a.id, companyID, a.number, a.name, a.kind)
	}
	exec(`UPDATE companies SET default_ar_account_id = $2, default_ap_account_id = $3,
	      series_sales_offer = 'SALES_OFFER', series_sales_order = 'SALES_ORDER', series_sales_invoice = 'SALES_INVOICE'
	      WHERE id = $1`, companyID, f.ar, ap)
	for _, s := range []struct{ code, prefix string }{
		{"SALES_OFFER", "OF-"}, {"SALES_ORDER", "SO-"}, {"SALES_INVOICE", "INV-"},
	} {
		exec(`INSERT INTO number_series (id, company_id, code, prefix, next_number, min_width) VALUES ($1, $2, $3, $4, 1, 4)`,
			id(), companyID, s.code, s.prefix)
	}
	exec(`INSERT INTO fiscal_periods (id, company_id, name, start_date, end_date) VALUES ($1, $2, '2024', '2024-01-01', '2024-12-31')`,
		id(), companyID)

	vat := id()
	exec(`INSERT INTO vat_codes (id, company_id, code, name, vat_type, rate, output_vat_account_id, dk_only)
	      VALUES ($1, $2, 'S25', 'IVA ventas 25%', $3, 0.25, $4, TRUE)`,
		vat, companyID, string(entity.VatTypeSale), outVat)

	group := id()
	exec(`INSERT INTO item_groups (id, company_id, name, default_sales_vat_code_id,
	      sales_account_id, expense_account_id, inventory_account_id, cogs_account_id)
	      VALUES ($1, $2, 'Mercadería', $3, $4, $5, $6, $7)`,
		group, companyID, vat, sales, expense, inventoryAcc, cogs)
	exec(`INSERT INTO items (id, company_id, number, name, group_id, is_stock_item, sales_price, purchase_cost)
	      VALUES ($1, $2, '9001', 'Instalación', $3, FALSE, 200, 0)`, f.service, companyID, group)
	exec(`INSERT INTO items (id, company_id, number, name, group_id, is_stock_item, sales_price, purchase_cost)
	      VALUES ($1, $2, '1001', 'Lámpara', $3, TRUE, 100, 40)`, f.lamp, companyID, group)
	exec(`INSERT INTO inventory_layers (id, company_id, item_id, qty_in, qty_remaining, unit_cost_base)
	      VALUES ($1, $2, $3, 10, 10, 40)`, id(), companyID, f.lamp)

	debtorGroup := id()
	exec(`INSERT INTO debtor_groups (id, company_id, name, ar_account_id, payment_terms_days) VALUES ($1, $2, 'Nacionales', $3, 14)`,
		debtorGroup, companyID, f.ar)
	exec(`INSERT INTO debtors (id, company_id, number, name, group_id, vat_area) VALUES ($1, $2, '10000', 'Hansen A/S', $3, $4)`,
		f.debtor, companyID, debtorGroup, string(entity.VatAreaDK))

	txRunner := postgres.NewTxRunner(pool)
	resolver := fx.NewResolver(postgres.NewExchangeRateRepository(pool), nil)
	f.docs = documents.NewService(txRunner)
	f.engine = posting.NewEngine(txRunner, resolver, zerolog.Nop())
	f.journals = ledger.NewJournalService(txRunner, resolver, zerolog.Nop())
	f.settle = settlement.NewService(txRunner, zerolog.Nop())
	f.fifo = inventory.NewFIFOUseCase(txRunner)
	return f
}

// invoice crea una factura sin contabilizar con las líneas dadas.
func (f *ledgerFixture) invoice(t *testing.T, lines ...documents.LineInput) *entity.SalesDocument {
	t.Helper()
	ctx := context.Background()
	doc, err := f.docs.CreateSales(ctx, documents.CreateSalesInput{
		CompanyID: f.companyID, DebtorID: f.debtor, State: entity.SalesInvoice, Date: postingDay,
	})
	require.NoError(t, err)
	for _, l := range lines {
		doc, err = f.docs.AddSalesLine(ctx, doc.ID, l)
		require.NoError(t, err)
	}
	return doc
}

// payment cobro bancario en borrador; devuelve el apunte al haber de deudores.
func (f *ledgerFixture) payment(t *testing.T, amount string) string {
	t.Helper()
	j, err := f.journals.CreateDraft(context.Background(), ledger.CreateJournalInput{
		CompanyID: f.companyID, Date: postingDay, Reference: "Cobro",
		Lines: []ledger.LineInput{
			{AccountID: f.bank, DebitTx: decimal.RequireFromString(amount)},
			{AccountID: f.ar, CreditTx: decimal.RequireFromString(amount)},
		},
	})
	require.NoError(t, err)
	return j.Lines[1].ID
}

func (f *ledgerFixture) qtyRemaining(t *testing.T, itemID string) (total decimal.Decimal, negatives int) {
	t.Helper()
	require.NoError(t, f.pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(qty_remaining), 0), COUNT(*) FILTER (WHERE qty_remaining < 0)
		 FROM inventory_layers WHERE item_id = $1`, itemID).Scan(&total, &negatives))
	return total, negatives
}

func lineOf(itemID, qty string) documents.LineInput {
	return documents.LineInput{ItemID: itemID, Qty: decimal.RequireFromString(qty)}
}

// ─── Contabilización concurrente ─────────────────────────────────────────────

func TestPostSalesInvoice_ConcurrenteSoloUnaVez(t *testing.T) {
	f := seedLedger(t)
	doc := f.invoice(t, lineOf(f.service, "1"))

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		duplicate int
		other     []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.PostSalesInvoice(context.Background(), doc.ID, "u1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrAlreadyPosted):
				duplicate++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, duplicate)

	ctx := context.Background()
	var journals, openItems int
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM journals WHERE company_id = $1 AND state = $2`, f.companyID, string(entity.JournalPosted)).Scan(&journals))
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM open_items WHERE sales_document_id = $1`, doc.ID).Scan(&openItems))
	assert.Equal(t, 1, journals)
	assert.Equal(t, 1, openItems)

	var next int64
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT next_number FROM number_series WHERE company_id = $1 AND code = 'JOURNAL'`, f.companyID).Scan(&next))
	assert.Equal(t, int64(2), next, "los intentos rechazados no consumen números")
}

// ─── Liquidación concurrente ─────────────────────────────────────────────────

func TestSettleAndSync_ConcurrenteNoSobreliquida(t *testing.T) {
	f := seedLedger(t)
	ctx := context.Background()
	res, err := f.engine.PostSalesInvoice(ctx, f.invoice(t, lineOf(f.service, "1")).ID, "u1")
	require.NoError(t, err)
	require.Equal(t, "250.00", res.OpenItem.OriginalTx.StringFixed(2))

	// 6 cobros de 100 contra una partida de 250: solo caben dos
	const n = 6
	ids := make([]string, n)
	for i := range ids {
		st, err := f.settle.Create(ctx, settlement.CreateInput{
			CompanyID: f.companyID, OpenItemID: res.OpenItem.ID, PaymentJournalLineID: f.payment(t, "100"),
		})
		require.NoError(t, err)
		ids[i] = st.ID
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		applied  = decimal.Zero
		ok, over int
		other    []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			r, err := f.settle.SettleAndSync(context.Background(), id, "u1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
				applied = applied.Add(r.Settlement.AmountTx)
			case errors.Is(err, domain.ErrOverSettlement):
				over++
			default:
				other = append(other, err)
			}
		}(id)
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 2, ok)
	assert.Equal(t, n-2, over)
	assert.True(t, applied.LessThanOrEqual(res.OpenItem.OriginalTx))

	var remaining, settledSum decimal.Decimal
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT remaining_tx FROM open_items WHERE id = $1`, res.OpenItem.ID).Scan(&remaining))
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_tx), 0) FROM settlements WHERE open_item_id = $1 AND settled_at IS NOT NULL`,
		res.OpenItem.ID).Scan(&settledSum))
	assert.Equal(t, "50.00", remaining.StringFixed(2))
	assert.Equal(t, "200.00", settledSum.StringFixed(2))

	var state string
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT state FROM sales_documents WHERE id = $1`, res.Document.ID).Scan(&state))
	assert.Equal(t, string(entity.SalesPartlyPaid), state)
}

// ─── FIFO concurrente ────────────────────────────────────────────────────────

func TestConsume_ConcurrenteSinStockNegativo(t *testing.T) {
	f := seedLedger(t)

	// 5 salidas de 3 sobre 10 unidades: tres pasan, dos quedan sin stock
	const n = 5
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, shortage int
		other        []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.fifo.Consume(context.Background(), inventory.ConsumeInput{
				CompanyID: f.companyID, UserID: "u1", ItemID: f.lamp, Qty: decimal.NewFromInt(3),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				shortage++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 3, ok)
	assert.Equal(t, 2, shortage)

	total, negatives := f.qtyRemaining(t, f.lamp)
	assert.Zero(t, negatives)
	assert.Equal(t, "1", total.String())

	var moves int
	require.NoError(t, f.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_moves WHERE item_id = $1`, f.lamp).Scan(&moves))
	assert.Equal(t, 3, moves)
}

// ─── Flujo completo ──────────────────────────────────────────────────────────

func TestVentaContabilizaLiquidaYSincroniza(t *testing.T) {
	f := seedLedger(t)
	ctx := context.Background()
	doc := f.invoice(t, lineOf(f.lamp, "2"))
	assert.Equal(t, "INV-0001", doc.InvoiceNo)

	res, err := f.engine.PostSalesInvoice(ctx, doc.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SalesPosted, res.Document.State)
	assert.Equal(t, "J-00001", res.Journal.Number)
	assert.Equal(t, "250.00", res.OpenItem.OriginalBase.StringFixed(2))
	assert.Equal(t, "2024-06-17", res.OpenItem.DueDate.Format("2006-01-02"))

	var debit, credit, cogs decimal.Decimal
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT SUM(debit_base), SUM(credit_base) FROM journal_lines WHERE journal_id = $1`, res.Journal.ID).Scan(&debit, &credit))
	assert.True(t, debit.Equal(credit), "asiento cuadrado: %s / %s", debit, credit)
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(jl.debit_base), 0) FROM journal_lines jl
		 JOIN accounts a ON a.id = jl.account_id
		 WHERE jl.journal_id = $1 AND a.number = '1300'`, res.Journal.ID).Scan(&cogs))
	assert.Equal(t, "80.00", cogs.StringFixed(2))

	total, negatives := f.qtyRemaining(t, f.lamp)
	assert.Zero(t, negatives)
	assert.Equal(t, "8", total.String())

	first, err := f.settle.Create(ctx, settlement.CreateInput{
		CompanyID: f.companyID, OpenItemID: res.OpenItem.ID, PaymentJournalLineID: f.payment(t, "100"),
	})
	require.NoError(t, err)
	r1, err := f.settle.SettleAndSync(ctx, first.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SalesPartlyPaid, r1.Document.State)

	second, err := f.settle.Create(ctx, settlement.CreateInput{
		CompanyID: f.companyID, OpenItemID: res.OpenItem.ID, PaymentJournalLineID: f.payment(t, "150"),
	})
	require.NoError(t, err)
	r2, err := f.settle.SettleAndSync(ctx, second.ID, "u2")
	require.NoError(t, err)
	assert.True(t, r2.OpenItem.IsClosed())
	assert.Equal(t, entity.SalesPaid, r2.Document.State)

	got, err := f.docs.GetSales(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesPaid, got.State)
	assert.Equal(t, "u2", got.PaidBy)
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, "250.00", got.TotalTx.StringFixed(2))

	_, err = f.settle.SettleAndSync(ctx, first.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
}
