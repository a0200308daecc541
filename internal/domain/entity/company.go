package entity

import "time"

// Company entidad legal: partición contable de casi todo el modelo.
// Las series se referencian por código (clave única company_id + code).
type Company struct {
	ID           string
	Name         string
	BaseCurrency string // ISO 4217

	DefaultARAccountID string
	DefaultAPAccountID string
	FXGainAccountID    string
	FXLossAccountID    string

	SeriesJournal         string
	SeriesSalesOffer      string
	SeriesSalesOrder      string
	SeriesSalesInvoice    string
	SeriesPurchaseOrder   string
	SeriesPurchaseInvoice string

	CreatedAt time.Time
	UpdatedAt time.Time
}
