package repository

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// InventoryLayerRepository capas FIFO.
type InventoryLayerRepository interface {
	// ListOpenForUpdate bloquea todas las capas con saldo del artículo,
	// ordenadas por created_at, id.
	ListOpenForUpdate(ctx context.Context, companyID, itemID string) ([]*entity.InventoryLayer, error)
	UpdateRemaining(ctx context.Context, layer *entity.InventoryLayer) error
	Create(ctx context.Context, layer *entity.InventoryLayer) error
}

// StockMoveRepository auditoría de movimientos.
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
}
