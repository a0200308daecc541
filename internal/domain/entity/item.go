package entity

import "github.com/shopspring/decimal"

// ItemGroup agrupa artículos y define cuentas e IVA por defecto.
type ItemGroup struct {
	ID                       string
	CompanyID                string
	Name                     string
	DefaultSalesVatCodeID    string
	DefaultPurchaseVatCodeID string
	SalesAccountID           string
	ExpenseAccountID         string
	InventoryAccountID       string
	COGSAccountID            string
}

// Item artículo vendible o comprable.
type Item struct {
	ID           string
	CompanyID    string
	Number       string
	Name         string
	GroupID      string
	IsStockItem  bool
	SalesPrice   decimal.Decimal
	PurchaseCost decimal.Decimal
}
