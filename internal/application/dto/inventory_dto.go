package dto

import "github.com/shopspring/decimal"

// ConsumeRequest body para POST /api/inventory/consume.
type ConsumeRequest struct {
	ItemID string          `json:"item_id" validate:"required"`
	Qty    decimal.Decimal `json:"qty"`
}

// ConsumedLayer cantidad tomada de una capa FIFO.
type ConsumedLayer struct {
	LayerID      string          `json:"layer_id"`
	Qty          decimal.Decimal `json:"qty"`
	UnitCostBase decimal.Decimal `json:"unit_cost_base"`
}

// ConsumeResponse capas consumidas, de la más antigua a la más nueva.
type ConsumeResponse struct {
	ItemID string          `json:"item_id"`
	Layers []ConsumedLayer `json:"layers"`
}
