package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLayer capa de costo FIFO en moneda base. Solo se decrementa;
// las capas agotadas se conservan para auditoría.
type InventoryLayer struct {
	ID             string
	CompanyID      string
	ItemID         string
	QtyIn          decimal.Decimal
	QtyRemaining   decimal.Decimal
	UnitCostBase   decimal.Decimal
	PurchaseLineID string
	SalesLineID    string // devoluciones por nota de crédito
	CreatedAt      time.Time
}

// StockMove registro append-only de cada entrada/salida de inventario.
// Qty es positivo en entradas y negativo en salidas.
type StockMove struct {
	ID             string
	CompanyID      string
	ItemID         string
	Qty            decimal.Decimal
	UnitCostBase   decimal.Decimal
	SalesLineID    string
	PurchaseLineID string
	CreatedAt      time.Time
	CreatedBy      string
}
