package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-posting/internal/domain/money"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAmount_RedondeoBancario(t *testing.T) {
	assert.Equal(t, "0.12", money.Amount(d("0.125")).StringFixed(2))
	assert.Equal(t, "0.14", money.Amount(d("0.135")).StringFixed(2))
	assert.Equal(t, "-2.50", money.Amount(d("-2.505")).StringFixed(2))
}

func TestPrecisiones(t *testing.T) {
	assert.Equal(t, "1.2346", money.Cost(d("1.23456")).String())
	assert.Equal(t, "1.235", money.Qty(d("1.2346")).String())
	assert.Equal(t, "0.1234567891", money.Rate(d("0.12345678906")).String())
}

func TestSnap(t *testing.T) {
	assert.True(t, money.Snap(d("0.009")).IsZero())
	assert.True(t, money.Snap(d("-0.0099")).IsZero())
	assert.Equal(t, "0.01", money.Snap(d("0.01")).String())
	assert.Equal(t, "-5", money.Snap(d("-5")).String())
}
