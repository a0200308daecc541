// Package money centraliza las precisiones decimales del libro mayor.
// Todos los redondeos son bancarios (half-even).
package money

import "github.com/shopspring/decimal"

// Precisiones fijas.
const (
	AmountPlaces int32 = 2
	CostPlaces   int32 = 4
	QtyPlaces    int32 = 3
	RatePlaces   int32 = 10
)

// SnapTolerance residuo por debajo del cual un saldo se considera cero.
var SnapTolerance = decimal.New(1, -2)

// Amount redondea un importe a céntimos.
func Amount(d decimal.Decimal) decimal.Decimal { return d.RoundBank(AmountPlaces) }

// Cost redondea un costo unitario.
func Cost(d decimal.Decimal) decimal.Decimal { return d.RoundBank(CostPlaces) }

// Qty redondea una cantidad.
func Qty(d decimal.Decimal) decimal.Decimal { return d.RoundBank(QtyPlaces) }

// Rate redondea una tasa de cambio.
func Rate(d decimal.Decimal) decimal.Decimal { return d.RoundBank(RatePlaces) }

// Snap devuelve cero si |d| < 0.01.
func Snap(d decimal.Decimal) decimal.Decimal {
	if d.Abs().LessThan(SnapTolerance) {
		return decimal.Zero
	}
	return d
}
