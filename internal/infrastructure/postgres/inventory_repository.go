package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

var (
	_ repository.InventoryLayerRepository = (*InventoryLayerRepo)(nil)
	_ repository.StockMoveRepository      = (*StockMoveRepo)(nil)
)

// InventoryLayerRepo capas FIFO (usable con pool o tx).
type InventoryLayerRepo struct {
	q Querier
}

// NewInventoryLayerRepository construye el adaptador. Pasar la tx del caller para bloquear.
func NewInventoryLayerRepository(q Querier) *InventoryLayerRepo {
	return &InventoryLayerRepo{q: q}
}

// ListOpenForUpdate bloquea todas las capas con saldo del artículo en orden FIFO.
// Se bloquean todas (no solo las que se van a consumir) para que dos consumos
// concurrentes del mismo artículo se serialicen.
func (r *InventoryLayerRepo) ListOpenForUpdate(ctx context.Context, companyID, itemID string) ([]*entity.InventoryLayer, error) {
	if !isUUID(itemID) {
		return nil, nil
	}
	query := `
		SELECT id, company_id, item_id, qty_in, qty_remaining, unit_cost_base,
		       purchase_line_id, sales_line_id, created_at
		FROM inventory_layers
		WHERE company_id = $1 AND item_id = $2 AND qty_remaining > 0
		ORDER BY created_at, id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, companyID, itemID)
	if err != nil {
		return nil, fmt.Errorf("lock inventory layers: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryLayer
	for rows.Next() {
		var l entity.InventoryLayer
		var purchaseLine, salesLine *string
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.ItemID, &l.QtyIn, &l.QtyRemaining, &l.UnitCostBase,
			&purchaseLine, &salesLine, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory layer: %w", err)
		}
		l.PurchaseLineID = deref(purchaseLine)
		l.SalesLineID = deref(salesLine)
		out = append(out, &l)
	}
	return out, rows.Err()
}

// UpdateRemaining persiste el saldo de la capa.
func (r *InventoryLayerRepo) UpdateRemaining(ctx context.Context, l *entity.InventoryLayer) error {
	_, err := r.q.Exec(ctx, `UPDATE inventory_layers SET qty_remaining = $1 WHERE id = $2`, l.QtyRemaining, l.ID)
	if err != nil {
		return fmt.Errorf("update inventory layer: %w", err)
	}
	return nil
}

// Create inserta una capa nueva.
func (r *InventoryLayerRepo) Create(ctx context.Context, l *entity.InventoryLayer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_layers (id, company_id, item_id, qty_in, qty_remaining, unit_cost_base,
		                              purchase_line_id, sales_line_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.CompanyID, l.ItemID, l.QtyIn, l.QtyRemaining, l.UnitCostBase,
		nullable(l.PurchaseLineID), nullable(l.SalesLineID), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory layer: %w", err)
	}
	return nil
}

// StockMoveRepo auditoría append-only de movimientos.
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador.
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMoveRepo) Create(ctx context.Context, m *entity.StockMove) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_moves (id, company_id, item_id, qty, unit_cost_base, sales_line_id, purchase_line_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.CompanyID, m.ItemID, m.Qty, m.UnitCostBase,
		nullable(m.SalesLineID), nullable(m.PurchaseLineID), m.CreatedAt, nullable(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}
