package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var (
	_ repository.CompanyRepository          = (*companyRepo)(nil)
	_ repository.NumberSeriesRepository     = (*seriesRepo)(nil)
	_ repository.AccountRepository          = (*accountRepo)(nil)
	_ repository.FiscalPeriodRepository     = (*periodRepo)(nil)
	_ repository.JournalRepository          = (*journalRepo)(nil)
	_ repository.ExchangeRateRepository     = (*rateRepo)(nil)
	_ repository.InventoryLayerRepository   = (*layerRepo)(nil)
	_ repository.StockMoveRepository        = (*moveRepo)(nil)
	_ repository.ItemRepository             = (*itemRepo)(nil)
	_ repository.VatCodeRepository          = (*vatRepo)(nil)
	_ repository.DebtorRepository           = (*debtorRepo)(nil)
	_ repository.CreditorRepository         = (*creditorRepo)(nil)
	_ repository.SalesDocumentRepository    = (*salesRepo)(nil)
	_ repository.PurchaseDocumentRepository = (*purchaseRepo)(nil)
	_ repository.OpenItemRepository         = (*openItemRepo)(nil)
	_ repository.SettlementRepository       = (*settlementRepo)(nil)
)

func seriesKey(companyID, code string) string { return companyID + "|" + code }

func rateKey(companyID string, date time.Time, base, quote string) string {
	return companyID + "|" + entity.DateOnly(date).Format("2006-01-02") + "|" + base + "|" + quote
}

func copyJournal(j entity.Journal) entity.Journal {
	j.Lines = append([]entity.JournalLine(nil), j.Lines...)
	return j
}

func copySales(s entity.SalesDocument) entity.SalesDocument {
	s.Lines = append([]entity.SalesLine(nil), s.Lines...)
	return s
}

func copyPurchase(p entity.PurchaseDocument) entity.PurchaseDocument {
	p.Lines = append([]entity.PurchaseLine(nil), p.Lines...)
	return p
}

func sortLayers(ls []entity.InventoryLayer) {
	sort.Slice(ls, func(i, j int) bool {
		if !ls[i].CreatedAt.Equal(ls[j].CreatedAt) {
			return ls[i].CreatedAt.Before(ls[j].CreatedAt)
		}
		return ls[i].ID < ls[j].ID
	})
}

// ─── Empresa y numeración ───────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	r.s.read(func(d *data) {
		if c, ok := d.companies[id]; ok {
			out = &c
		}
	})
	return out, nil
}

type seriesRepo struct{ s *Store }

func (r *seriesRepo) GetForUpdate(_ context.Context, companyID, code string) (*entity.NumberSeries, error) {
	var out *entity.NumberSeries
	r.s.read(func(d *data) {
		if n, ok := d.series[seriesKey(companyID, code)]; ok {
			out = &n
		}
	})
	return out, nil
}

func (r *seriesRepo) UpdateNextNumber(_ context.Context, n *entity.NumberSeries) error {
	r.s.write(func(d *data) { d.series[seriesKey(n.CompanyID, n.Code)] = *n })
	return nil
}

// ─── Plan de cuentas ────────────────────────────────────────────────────────

type accountRepo struct{ s *Store }

func (r *accountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	var out *entity.Account
	r.s.read(func(d *data) {
		if a, ok := d.accounts[id]; ok {
			out = &a
		}
	})
	return out, nil
}

func (r *accountRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Account, error) {
	out := make(map[string]*entity.Account, len(ids))
	r.s.read(func(d *data) {
		for _, id := range ids {
			if a, ok := d.accounts[id]; ok {
				out[id] = &a
			}
		}
	})
	return out, nil
}

type periodRepo struct{ s *Store }

func (r *periodRepo) FindCovering(_ context.Context, companyID string, date time.Time) (*entity.FiscalPeriod, error) {
	var out *entity.FiscalPeriod
	r.s.read(func(d *data) {
		for _, p := range d.periods {
			if p.CompanyID == companyID && p.Covers(date) {
				out = &p
				return
			}
		}
	})
	return out, nil
}

// ─── Asientos ───────────────────────────────────────────────────────────────

type journalRepo struct{ s *Store }

func (r *journalRepo) Create(_ context.Context, j *entity.Journal) error {
	for i := range j.Lines {
		if j.Lines[i].ID == "" {
			j.Lines[i].ID = uuid.New().String()
		}
		j.Lines[i].JournalID = j.ID
	}
	r.s.write(func(d *data) { d.journals[j.ID] = copyJournal(*j) })
	return nil
}

func (r *journalRepo) GetByID(_ context.Context, id string) (*entity.Journal, error) {
	var out *entity.Journal
	r.s.read(func(d *data) {
		if j, ok := d.journals[id]; ok {
			c := copyJournal(j)
			out = &c
		}
	})
	return out, nil
}

func (r *journalRepo) GetForUpdate(ctx context.Context, id string) (*entity.Journal, error) {
	return r.GetByID(ctx, id)
}

func (r *journalRepo) MarkPosted(_ context.Context, j *entity.Journal) error {
	r.s.write(func(d *data) {
		cur, ok := d.journals[j.ID]
		if !ok {
			return
		}
		cur.Number = j.Number
		cur.State = j.State
		cur.PostedAt = j.PostedAt
		cur.PostedBy = j.PostedBy
		d.journals[j.ID] = cur
	})
	return nil
}

func (r *journalRepo) GetLine(_ context.Context, lineID string) (*entity.JournalLine, *entity.Journal, error) {
	var line *entity.JournalLine
	var head *entity.Journal
	r.s.read(func(d *data) {
		for _, j := range d.journals {
			for _, l := range j.Lines {
				if l.ID == lineID {
					l := l
					h := j
					h.Lines = nil
					line, head = &l, &h
					return
				}
			}
		}
	})
	return line, head, nil
}

// ─── Tasas ──────────────────────────────────────────────────────────────────

type rateRepo struct{ s *Store }

func (r *rateRepo) Find(_ context.Context, companyID string, date time.Time, base, quote string) (*entity.ExchangeRate, error) {
	var out *entity.ExchangeRate
	r.s.read(func(d *data) {
		if x, ok := d.rates[rateKey(companyID, date, base, quote)]; ok {
			out = &x
		}
	})
	return out, nil
}

func (r *rateRepo) Upsert(_ context.Context, rate *entity.ExchangeRate) (bool, error) {
	var created bool
	r.s.write(func(d *data) {
		key := rateKey(rate.CompanyID, rate.Date, rate.Base, rate.Quote)
		if cur, ok := d.rates[key]; ok {
			rate.ID = cur.ID
		} else {
			created = true
		}
		d.rates[key] = *rate
	})
	return created, nil
}

// ─── Inventario ─────────────────────────────────────────────────────────────

type layerRepo struct{ s *Store }

func (r *layerRepo) ListOpenForUpdate(_ context.Context, companyID, itemID string) ([]*entity.InventoryLayer, error) {
	var open []entity.InventoryLayer
	r.s.read(func(d *data) {
		for _, l := range d.layers {
			if l.CompanyID == companyID && l.ItemID == itemID && l.QtyRemaining.IsPositive() {
				open = append(open, l)
			}
		}
	})
	sortLayers(open)
	out := make([]*entity.InventoryLayer, len(open))
	for i := range open {
		out[i] = &open[i]
	}
	return out, nil
}

func (r *layerRepo) UpdateRemaining(_ context.Context, l *entity.InventoryLayer) error {
	r.s.write(func(d *data) {
		cur, ok := d.layers[l.ID]
		if !ok {
			return
		}
		cur.QtyRemaining = l.QtyRemaining
		d.layers[l.ID] = cur
	})
	return nil
}

func (r *layerRepo) Create(_ context.Context, l *entity.InventoryLayer) error {
	r.s.write(func(d *data) { d.layers[l.ID] = *l })
	return nil
}

type moveRepo struct{ s *Store }

func (r *moveRepo) Create(_ context.Context, m *entity.StockMove) error {
	r.s.write(func(d *data) { d.moves = append(d.moves, *m) })
	return nil
}

// ─── Maestros ───────────────────────────────────────────────────────────────

type itemRepo struct{ s *Store }

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	r.s.read(func(d *data) {
		if i, ok := d.items[id]; ok {
			out = &i
		}
	})
	return out, nil
}

func (r *itemRepo) GetGroup(_ context.Context, id string) (*entity.ItemGroup, error) {
	var out *entity.ItemGroup
	r.s.read(func(d *data) {
		if g, ok := d.itemGroups[id]; ok {
			out = &g
		}
	})
	return out, nil
}

type vatRepo struct{ s *Store }

func (r *vatRepo) GetByID(_ context.Context, id string) (*entity.VatCode, error) {
	var out *entity.VatCode
	r.s.read(func(d *data) {
		if v, ok := d.vatCodes[id]; ok {
			out = &v
		}
	})
	return out, nil
}

type debtorRepo struct{ s *Store }

func (r *debtorRepo) GetByID(_ context.Context, id string) (*entity.Debtor, error) {
	var out *entity.Debtor
	r.s.read(func(d *data) {
		if c, ok := d.debtors[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *debtorRepo) GetGroup(_ context.Context, id string) (*entity.DebtorGroup, error) {
	var out *entity.DebtorGroup
	r.s.read(func(d *data) {
		if g, ok := d.debtorGroups[id]; ok {
			out = &g
		}
	})
	return out, nil
}

type creditorRepo struct{ s *Store }

func (r *creditorRepo) GetByID(_ context.Context, id string) (*entity.Creditor, error) {
	var out *entity.Creditor
	r.s.read(func(d *data) {
		if c, ok := d.creditors[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// ─── Documentos ─────────────────────────────────────────────────────────────

type salesRepo struct{ s *Store }

func (r *salesRepo) Create(_ context.Context, doc *entity.SalesDocument) error {
	r.s.write(func(d *data) { d.sales[doc.ID] = copySales(*doc) })
	return nil
}

func (r *salesRepo) GetByID(_ context.Context, id string) (*entity.SalesDocument, error) {
	var out *entity.SalesDocument
	r.s.read(func(d *data) {
		if doc, ok := d.sales[id]; ok {
			c := copySales(doc)
			out = &c
		}
	})
	return out, nil
}

func (r *salesRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesDocument, error) {
	return r.GetByID(ctx, id)
}

func (r *salesRepo) Update(_ context.Context, doc *entity.SalesDocument) error {
	r.s.write(func(d *data) {
		cur, ok := d.sales[doc.ID]
		if !ok {
			return
		}
		lines := cur.Lines
		cur = *doc
		cur.Lines = lines
		d.sales[doc.ID] = cur
	})
	return nil
}

func (r *salesRepo) AddLine(_ context.Context, line *entity.SalesLine) error {
	r.s.write(func(d *data) {
		cur, ok := d.sales[line.DocumentID]
		if !ok {
			return
		}
		cur.Lines = append(append([]entity.SalesLine(nil), cur.Lines...), *line)
		d.sales[line.DocumentID] = cur
	})
	return nil
}

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(_ context.Context, doc *entity.PurchaseDocument) error {
	r.s.write(func(d *data) { d.purchases[doc.ID] = copyPurchase(*doc) })
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.PurchaseDocument, error) {
	var out *entity.PurchaseDocument
	r.s.read(func(d *data) {
		if doc, ok := d.purchases[id]; ok {
			c := copyPurchase(doc)
			out = &c
		}
	})
	return out, nil
}

func (r *purchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseDocument, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseRepo) Update(_ context.Context, doc *entity.PurchaseDocument) error {
	r.s.write(func(d *data) {
		cur, ok := d.purchases[doc.ID]
		if !ok {
			return
		}
		lines := cur.Lines
		cur = *doc
		cur.Lines = lines
		d.purchases[doc.ID] = cur
	})
	return nil
}

func (r *purchaseRepo) AddLine(_ context.Context, line *entity.PurchaseLine) error {
	r.s.write(func(d *data) {
		cur, ok := d.purchases[line.DocumentID]
		if !ok {
			return
		}
		cur.Lines = append(append([]entity.PurchaseLine(nil), cur.Lines...), *line)
		d.purchases[line.DocumentID] = cur
	})
	return nil
}

// ─── Partidas abiertas y liquidaciones ──────────────────────────────────────

type openItemRepo struct{ s *Store }

func (r *openItemRepo) Create(_ context.Context, o *entity.OpenItem) error {
	r.s.write(func(d *data) { d.openItems[o.ID] = *o })
	return nil
}

func (r *openItemRepo) GetForUpdate(_ context.Context, id string) (*entity.OpenItem, error) {
	var out *entity.OpenItem
	r.s.read(func(d *data) {
		if o, ok := d.openItems[id]; ok {
			out = &o
		}
	})
	return out, nil
}

func (r *openItemRepo) LatestARForSalesDocumentForUpdate(_ context.Context, salesDocumentID string) (*entity.OpenItem, error) {
	var out *entity.OpenItem
	r.s.read(func(d *data) {
		for _, o := range d.openItems {
			if o.Kind != entity.OpenItemAR || o.SalesDocumentID != salesDocumentID {
				continue
			}
			if out == nil || o.CreatedAt.After(out.CreatedAt) || (o.CreatedAt.Equal(out.CreatedAt) && o.ID > out.ID) {
				o := o
				out = &o
			}
		}
	})
	return out, nil
}

func (r *openItemRepo) UpdateRemaining(_ context.Context, o *entity.OpenItem) error {
	r.s.write(func(d *data) {
		cur, ok := d.openItems[o.ID]
		if !ok {
			return
		}
		cur.RemainingTx = o.RemainingTx
		cur.RemainingBase = o.RemainingBase
		d.openItems[o.ID] = cur
	})
	return nil
}

func (r *openItemRepo) ListOpenByDebtor(_ context.Context, companyID, debtorID string) ([]*entity.OpenItem, error) {
	var list []entity.OpenItem
	r.s.read(func(d *data) {
		for _, o := range d.openItems {
			if o.Kind == entity.OpenItemAR && o.CompanyID == companyID && o.DebtorID == debtorID && !o.IsClosed() {
				list = append(list, o)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DueDate.Equal(list[j].DueDate) {
			return list[i].DueDate.Before(list[j].DueDate)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	out := make([]*entity.OpenItem, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

type settlementRepo struct{ s *Store }

func (r *settlementRepo) Create(_ context.Context, st *entity.Settlement) error {
	r.s.write(func(d *data) { d.settlements[st.ID] = *st })
	return nil
}

func (r *settlementRepo) GetForUpdate(_ context.Context, id string) (*entity.Settlement, error) {
	var out *entity.Settlement
	r.s.read(func(d *data) {
		if st, ok := d.settlements[id]; ok {
			out = &st
		}
	})
	return out, nil
}

func (r *settlementRepo) MarkSettled(_ context.Context, st *entity.Settlement) error {
	r.s.write(func(d *data) { d.settlements[st.ID] = *st })
	return nil
}
