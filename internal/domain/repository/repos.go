package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Companies         CompanyRepository
	NumberSeries      NumberSeriesRepository
	Accounts          AccountRepository
	Periods           FiscalPeriodRepository
	Journals          JournalRepository
	Rates             ExchangeRateRepository
	Layers            InventoryLayerRepository
	StockMoves        StockMoveRepository
	Items             ItemRepository
	VatCodes          VatCodeRepository
	Debtors           DebtorRepository
	Creditors         CreditorRepository
	SalesDocuments    SalesDocumentRepository
	PurchaseDocuments PurchaseDocumentRepository
	OpenItems         OpenItemRepository
	Settlements       SettlementRepository
}
