package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func layer(id, qty, cost string) *entity.InventoryLayer {
	return &entity.InventoryLayer{ID: id, QtyIn: d(qty), QtyRemaining: d(qty), UnitCostBase: d(cost)}
}

func TestAllocateFIFO_ConsumeLasCapasMasAntiguasPrimero(t *testing.T) {
	layers := []*entity.InventoryLayer{layer("a", "10", "5"), layer("b", "5", "6")}

	cs, err := inventory.AllocateFIFO(layers, d("12"))
	require.NoError(t, err)

	require.Len(t, cs, 2)
	assert.Equal(t, "a", cs[0].LayerID)
	assert.True(t, d("10").Equal(cs[0].Qty))
	assert.Equal(t, "b", cs[1].LayerID)
	assert.True(t, d("2").Equal(cs[1].Qty))
	assert.True(t, layers[0].QtyRemaining.IsZero())
	assert.True(t, d("3").Equal(layers[1].QtyRemaining))
	assert.Equal(t, "62.00", inventory.TotalCost(cs).StringFixed(2))
	assert.True(t, d("12").Equal(inventory.TotalQty(cs)))
}

func TestAllocateFIFO_SaltaCapasAgotadas(t *testing.T) {
	layers := []*entity.InventoryLayer{layer("a", "0", "5"), layer("b", "4", "7")}

	cs, err := inventory.AllocateFIFO(layers, d("1"))
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "b", cs[0].LayerID)
}

func TestAllocateFIFO_StockInsuficienteNoTocaNada(t *testing.T) {
	layers := []*entity.InventoryLayer{layer("a", "5", "5")}

	cs, err := inventory.AllocateFIFO(layers, d("8"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, cs)
	assert.True(t, d("5").Equal(layers[0].QtyRemaining))
}

func TestAllocateFIFO_CantidadCeroDevuelveVacio(t *testing.T) {
	layers := []*entity.InventoryLayer{layer("a", "5", "5")}

	cs, err := inventory.AllocateFIFO(layers, decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, cs)
	assert.True(t, d("5").Equal(layers[0].QtyRemaining))
}
