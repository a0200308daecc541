package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	appinventory "github.com/jhoicas/erp-posting/internal/application/inventory"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
	"github.com/jhoicas/erp-posting/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var t0 = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

// newStore entidad demo con dos capas del artículo de stock: 10 @ 40 y 5 @ 44.
func newStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	memory.SeedDemo(s, 2024)
	s.PutLayer(entity.InventoryLayer{
		ID: "L1", CompanyID: memory.DemoCompanyID, ItemID: memory.DemoStockItem,
		QtyIn: d("10"), QtyRemaining: d("10"), UnitCostBase: d("40"), CreatedAt: t0,
	})
	s.PutLayer(entity.InventoryLayer{
		ID: "L2", CompanyID: memory.DemoCompanyID, ItemID: memory.DemoStockItem,
		QtyIn: d("5"), QtyRemaining: d("5"), UnitCostBase: d("44"), CreatedAt: t0.Add(time.Hour),
	})
	return s
}

func TestConsume_FIFOYMovimiento(t *testing.T) {
	s := newStore(t)
	uc := appinventory.NewFIFOUseCase(s)

	cs, err := uc.Consume(context.Background(), appinventory.ConsumeInput{
		CompanyID: memory.DemoCompanyID, UserID: "u1", ItemID: memory.DemoStockItem, Qty: d("12"),
	})
	require.NoError(t, err)
	require.Len(t, cs, 2)

	l1, _ := s.Layer("L1")
	l2, _ := s.Layer("L2")
	assert.True(t, l1.QtyRemaining.IsZero())
	assert.True(t, d("3").Equal(l2.QtyRemaining))

	moves := s.StockMoves()
	require.Len(t, moves, 1)
	assert.True(t, d("-12").Equal(moves[0].Qty))
	// (10*40 + 2*44) / 12
	assert.Equal(t, "40.6667", moves[0].UnitCostBase.StringFixed(4))
	assert.Equal(t, "u1", moves[0].CreatedBy)
}

func TestConsume_StockInsuficienteNoConsumeNada(t *testing.T) {
	s := newStore(t)
	uc := appinventory.NewFIFOUseCase(s)

	_, err := uc.Consume(context.Background(), appinventory.ConsumeInput{
		CompanyID: memory.DemoCompanyID, ItemID: memory.DemoStockItem, Qty: d("16"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	l1, _ := s.Layer("L1")
	l2, _ := s.Layer("L2")
	assert.True(t, d("10").Equal(l1.QtyRemaining))
	assert.True(t, d("5").Equal(l2.QtyRemaining))
	assert.Empty(t, s.StockMoves())
}

func TestConsume_ArticuloDeOtraEntidad(t *testing.T) {
	s := newStore(t)
	uc := appinventory.NewFIFOUseCase(s)

	_, err := uc.Consume(context.Background(), appinventory.ConsumeInput{
		CompanyID: "otra", ItemID: memory.DemoStockItem, Qty: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsumeInTx_CantidadCeroNoLeeCapas(t *testing.T) {
	s := newStore(t)

	err := s.Run(context.Background(), func(r repository.Repos) error {
		cs, err := appinventory.ConsumeInTx(context.Background(), r.Layers, memory.DemoCompanyID, memory.DemoStockItem, decimal.Zero)
		assert.Empty(t, cs)
		return err
	})
	require.NoError(t, err)
	l1, _ := s.Layer("L1")
	assert.True(t, d("10").Equal(l1.QtyRemaining))
}

func TestReceiveInTx_CreaCapaRedondeada(t *testing.T) {
	s := newStore(t)

	var layer *entity.InventoryLayer
	err := s.Run(context.Background(), func(r repository.Repos) error {
		var err error
		layer, err = appinventory.ReceiveInTx(context.Background(), r.Layers, appinventory.ReceiveInput{
			CompanyID: memory.DemoCompanyID, ItemID: memory.DemoStockItem,
			Qty: d("2.0004"), UnitCostBase: d("12.34567"), At: t0.Add(2 * time.Hour),
		})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "2", layer.QtyIn.String())
	assert.Equal(t, "12.3457", layer.UnitCostBase.String())
	assert.Len(t, s.LayersOf(memory.DemoStockItem), 3)
}

func TestReceiveInTx_CantidadNoPositiva(t *testing.T) {
	s := newStore(t)

	err := s.Run(context.Background(), func(r repository.Repos) error {
		_, err := appinventory.ReceiveInTx(context.Background(), r.Layers, appinventory.ReceiveInput{
			CompanyID: memory.DemoCompanyID, ItemID: memory.DemoStockItem, Qty: decimal.Zero, UnitCostBase: d("1"),
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumeFromRequest_ArmaRespuesta(t *testing.T) {
	s := newStore(t)
	uc := appinventory.NewFIFOUseCase(s)

	res, err := uc.ConsumeFromRequest(context.Background(), memory.DemoCompanyID, "u1",
		dto.ConsumeRequest{ItemID: memory.DemoStockItem, Qty: d("4")})
	require.NoError(t, err)
	assert.Equal(t, memory.DemoStockItem, res.ItemID)
	require.Len(t, res.Layers, 1)
	assert.Equal(t, "L1", res.Layers[0].LayerID)
}
