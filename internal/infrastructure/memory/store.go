// Package memory implementa los repositorios en memoria. Run serializa las
// transacciones (equivalente a bloquear todas las filas) y restaura el estado
// previo si fn devuelve error. Se usa en tests y en el modo demo del API.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type data struct {
	companies    map[string]entity.Company
	series       map[string]entity.NumberSeries // companyID|code
	accounts     map[string]entity.Account
	periods      map[string]entity.FiscalPeriod
	journals     map[string]entity.Journal
	rates        map[string]entity.ExchangeRate // companyID|fecha|base|quote
	layers       map[string]entity.InventoryLayer
	moves        []entity.StockMove
	items        map[string]entity.Item
	itemGroups   map[string]entity.ItemGroup
	vatCodes     map[string]entity.VatCode
	debtors      map[string]entity.Debtor
	debtorGroups map[string]entity.DebtorGroup
	creditors    map[string]entity.Creditor
	sales        map[string]entity.SalesDocument
	purchases    map[string]entity.PurchaseDocument
	openItems    map[string]entity.OpenItem
	settlements  map[string]entity.Settlement
}

func newData() *data {
	return &data{
		companies:    map[string]entity.Company{},
		series:       map[string]entity.NumberSeries{},
		accounts:     map[string]entity.Account{},
		periods:      map[string]entity.FiscalPeriod{},
		journals:     map[string]entity.Journal{},
		rates:        map[string]entity.ExchangeRate{},
		layers:       map[string]entity.InventoryLayer{},
		items:        map[string]entity.Item{},
		itemGroups:   map[string]entity.ItemGroup{},
		vatCodes:     map[string]entity.VatCode{},
		debtors:      map[string]entity.Debtor{},
		debtorGroups: map[string]entity.DebtorGroup{},
		creditors:    map[string]entity.Creditor{},
		sales:        map[string]entity.SalesDocument{},
		purchases:    map[string]entity.PurchaseDocument{},
		openItems:    map[string]entity.OpenItem{},
		settlements:  map[string]entity.Settlement{},
	}
}

// clone copia profunda de todo lo que los repos mutan.
func (d *data) clone() *data {
	c := &data{
		companies:    maps.Clone(d.companies),
		series:       maps.Clone(d.series),
		accounts:     maps.Clone(d.accounts),
		periods:      maps.Clone(d.periods),
		journals:     make(map[string]entity.Journal, len(d.journals)),
		rates:        maps.Clone(d.rates),
		layers:       maps.Clone(d.layers),
		moves:        append([]entity.StockMove(nil), d.moves...),
		items:        maps.Clone(d.items),
		itemGroups:   maps.Clone(d.itemGroups),
		vatCodes:     maps.Clone(d.vatCodes),
		debtors:      maps.Clone(d.debtors),
		debtorGroups: maps.Clone(d.debtorGroups),
		creditors:    maps.Clone(d.creditors),
		sales:        make(map[string]entity.SalesDocument, len(d.sales)),
		purchases:    make(map[string]entity.PurchaseDocument, len(d.purchases)),
		openItems:    maps.Clone(d.openItems),
		settlements:  maps.Clone(d.settlements),
	}
	for k, j := range d.journals {
		c.journals[k] = copyJournal(j)
	}
	for k, s := range d.sales {
		c.sales[k] = copySales(s)
	}
	for k, p := range d.purchases {
		c.purchases[k] = copyPurchase(p)
	}
	return c
}

// Store almacén en memoria con semántica transaccional.
type Store struct {
	txMu sync.Mutex // una transacción a la vez
	mu   sync.RWMutex
	d    *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// Run ejecuta fn de forma exclusiva; si falla restaura la instantánea previa.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snapshot := s.d.clone()
	s.mu.RUnlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Repos repositorios sobre el almacén. Fuera de Run no hay aislamiento.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Companies:         &companyRepo{s},
		NumberSeries:      &seriesRepo{s},
		Accounts:          &accountRepo{s},
		Periods:           &periodRepo{s},
		Journals:          &journalRepo{s},
		Rates:             &rateRepo{s},
		Layers:            &layerRepo{s},
		StockMoves:        &moveRepo{s},
		Items:             &itemRepo{s},
		VatCodes:          &vatRepo{s},
		Debtors:           &debtorRepo{s},
		Creditors:         &creditorRepo{s},
		SalesDocuments:    &salesRepo{s},
		PurchaseDocuments: &purchaseRepo{s},
		OpenItems:         &openItemRepo{s},
		Settlements:       &settlementRepo{s},
	}
}

func (s *Store) read(fn func(d *data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.d)
}

func (s *Store) write(fn func(d *data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.d)
}

// ─── Datos maestros ─────────────────────────────────────────────────────────

// PutCompany registra o reemplaza una entidad.
func (s *Store) PutCompany(c entity.Company) { s.write(func(d *data) { d.companies[c.ID] = c }) }

// PutSeries registra una serie de numeración.
func (s *Store) PutSeries(n entity.NumberSeries) {
	s.write(func(d *data) { d.series[seriesKey(n.CompanyID, n.Code)] = n })
}

// PutAccount registra una cuenta.
func (s *Store) PutAccount(a entity.Account) { s.write(func(d *data) { d.accounts[a.ID] = a }) }

// PutPeriod registra un periodo contable.
func (s *Store) PutPeriod(p entity.FiscalPeriod) { s.write(func(d *data) { d.periods[p.ID] = p }) }

// PutRate registra una tasa de cambio.
func (s *Store) PutRate(r entity.ExchangeRate) {
	s.write(func(d *data) { d.rates[rateKey(r.CompanyID, r.Date, r.Base, r.Quote)] = r })
}

// PutLayer registra una capa FIFO.
func (s *Store) PutLayer(l entity.InventoryLayer) { s.write(func(d *data) { d.layers[l.ID] = l }) }

// PutItem registra un artículo.
func (s *Store) PutItem(i entity.Item) { s.write(func(d *data) { d.items[i.ID] = i }) }

// PutItemGroup registra un grupo de artículos.
func (s *Store) PutItemGroup(g entity.ItemGroup) { s.write(func(d *data) { d.itemGroups[g.ID] = g }) }

// PutVatCode registra un código de IVA.
func (s *Store) PutVatCode(v entity.VatCode) { s.write(func(d *data) { d.vatCodes[v.ID] = v }) }

// PutDebtor registra un cliente.
func (s *Store) PutDebtor(c entity.Debtor) { s.write(func(d *data) { d.debtors[c.ID] = c }) }

// PutDebtorGroup registra un grupo de clientes.
func (s *Store) PutDebtorGroup(g entity.DebtorGroup) { s.write(func(d *data) { d.debtorGroups[g.ID] = g }) }

// PutCreditor registra un proveedor.
func (s *Store) PutCreditor(c entity.Creditor) { s.write(func(d *data) { d.creditors[c.ID] = c }) }

// ─── Consultas de inspección ────────────────────────────────────────────────

// Layer devuelve una copia de la capa.
func (s *Store) Layer(id string) (entity.InventoryLayer, bool) {
	var l entity.InventoryLayer
	var ok bool
	s.read(func(d *data) { l, ok = d.layers[id] })
	return l, ok
}

// LayersOf capas de un artículo ordenadas FIFO.
func (s *Store) LayersOf(itemID string) []entity.InventoryLayer {
	var out []entity.InventoryLayer
	s.read(func(d *data) {
		for _, l := range d.layers {
			if l.ItemID == itemID {
				out = append(out, l)
			}
		}
	})
	sortLayers(out)
	return out
}

// StockMoves copia de los movimientos registrados.
func (s *Store) StockMoves() []entity.StockMove {
	var out []entity.StockMove
	s.read(func(d *data) { out = append(out, d.moves...) })
	return out
}

// Series devuelve la serie (companyID, code).
func (s *Store) Series(companyID, code string) (entity.NumberSeries, bool) {
	var n entity.NumberSeries
	var ok bool
	s.read(func(d *data) { n, ok = d.series[seriesKey(companyID, code)] })
	return n, ok
}

// OpenItemsOf partidas de un documento de venta o compra.
func (s *Store) OpenItemsOf(documentID string) []entity.OpenItem {
	var out []entity.OpenItem
	s.read(func(d *data) {
		for _, o := range d.openItems {
			if o.SalesDocumentID == documentID || o.PurchaseDocumentID == documentID {
				out = append(out, o)
			}
		}
	})
	return out
}

// JournalCount número de asientos guardados.
func (s *Store) JournalCount() int {
	var n int
	s.read(func(d *data) { n = len(d.journals) })
	return n
}
