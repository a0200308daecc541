package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/money"
)

// Consumption cantidad tomada de una capa a su costo unitario.
type Consumption struct {
	LayerID      string
	Qty          decimal.Decimal
	UnitCostBase decimal.Decimal
}

// AllocateFIFO consume qty de las capas en el orden recibido (el llamador las
// entrega ordenadas por created_at, id). Solo modifica las capas si hay stock
// suficiente; si falta, devuelve ErrInsufficientStock sin tocar nada.
// qty <= 0 devuelve una lista vacía.
func AllocateFIFO(layers []*entity.InventoryLayer, qty decimal.Decimal) ([]Consumption, error) {
	if !qty.IsPositive() {
		return nil, nil
	}
	available := decimal.Zero
	for _, l := range layers {
		if l.QtyRemaining.IsPositive() {
			available = available.Add(l.QtyRemaining)
		}
	}
	if available.LessThan(qty) {
		return nil, domain.Invalid(domain.ErrInsufficientStock, "faltan %s unidades", qty.Sub(available).StringFixed(money.QtyPlaces))
	}

	var out []Consumption
	need := qty
	for _, l := range layers {
		if !need.IsPositive() {
			break
		}
		if !l.QtyRemaining.IsPositive() {
			continue
		}
		take := decimal.Min(l.QtyRemaining, need)
		l.QtyRemaining = l.QtyRemaining.Sub(take)
		need = need.Sub(take)
		out = append(out, Consumption{LayerID: l.ID, Qty: take, UnitCostBase: l.UnitCostBase})
	}
	return out, nil
}

// TotalCost suma qty * costo y redondea a céntimos.
func TotalCost(cs []Consumption) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cs {
		total = total.Add(c.Qty.Mul(c.UnitCostBase))
	}
	return money.Amount(total)
}

// TotalQty suma las cantidades consumidas.
func TotalQty(cs []Consumption) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cs {
		total = total.Add(c.Qty)
	}
	return total
}
