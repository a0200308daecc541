package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/inventory"
	"github.com/jhoicas/erp-posting/internal/domain/money"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// FIFOUseCase consume y recibe capas de costo FIFO de forma transaccional,
// con bloqueo de todas las capas del artículo (SELECT FOR UPDATE) y Commit/Rollback.
type FIFOUseCase struct {
	txRunner ports.TxRunner
}

// NewFIFOUseCase construye el caso de uso.
func NewFIFOUseCase(txRunner ports.TxRunner) *FIFOUseCase {
	return &FIFOUseCase{txRunner: txRunner}
}

// ConsumeInput entrada para una salida de inventario fuera de un documento.
type ConsumeInput struct {
	CompanyID string
	UserID    string
	ItemID    string
	Qty       decimal.Decimal
}

// Consume inicia una transacción, consume qty de las capas más antiguas y
// deja un StockMove de auditoría. Si no hay stock suficiente no queda nada
// consumido.
func (uc *FIFOUseCase) Consume(ctx context.Context, in ConsumeInput) ([]inventory.Consumption, error) {
	if in.CompanyID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out []inventory.Consumption
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		item, err := r.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.CompanyID != in.CompanyID {
			return domain.ErrNotFound
		}
		cs, err := ConsumeInTx(ctx, r.Layers, in.CompanyID, in.ItemID, in.Qty)
		if err != nil {
			return err
		}
		if len(cs) > 0 {
			qty := inventory.TotalQty(cs)
			move := &entity.StockMove{
				ID:           uuid.New().String(),
				CompanyID:    in.CompanyID,
				ItemID:       in.ItemID,
				Qty:          qty.Neg(),
				UnitCostBase: money.Cost(inventory.TotalCost(cs).Div(qty)),
				CreatedAt:    time.Now(),
				CreatedBy:    in.UserID,
			}
			if err := r.StockMoves.Create(ctx, move); err != nil {
				return err
			}
		}
		out = cs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConsumeInTx ejecuta el consumo FIFO usando el repositorio del caller (misma transacción).
// qty <= 0 no bloquea ni lee capas. Si retorna error (ej: ErrInsufficientStock),
// el caller debe hacer rollback; ninguna capa se modifica en ese caso.
func ConsumeInTx(
	ctx context.Context,
	layers repository.InventoryLayerRepository,
	companyID, itemID string,
	qty decimal.Decimal,
) ([]inventory.Consumption, error) {
	if !qty.IsPositive() {
		return nil, nil
	}
	open, err := layers.ListOpenForUpdate(ctx, companyID, itemID)
	if err != nil {
		return nil, fmt.Errorf("lock inventory layers: %w", err)
	}
	cs, err := inventory.AllocateFIFO(open, qty)
	if err != nil {
		return nil, err
	}
	touched := make(map[string]bool, len(cs))
	for _, c := range cs {
		touched[c.LayerID] = true
	}
	for _, l := range open {
		if !touched[l.ID] {
			continue
		}
		if err := layers.UpdateRemaining(ctx, l); err != nil {
			return nil, fmt.Errorf("update inventory layer: %w", err)
		}
	}
	return cs, nil
}

// ReceiveInput entrada de una nueva capa FIFO.
type ReceiveInput struct {
	CompanyID      string
	ItemID         string
	Qty            decimal.Decimal
	UnitCostBase   decimal.Decimal
	PurchaseLineID string
	SalesLineID    string
	At             time.Time
}

// ReceiveInTx crea una capa FIFO en la transacción del caller.
func ReceiveInTx(ctx context.Context, layers repository.InventoryLayerRepository, in ReceiveInput) (*entity.InventoryLayer, error) {
	if !in.Qty.IsPositive() || in.UnitCostBase.IsNegative() {
		return nil, domain.Invalid(domain.ErrInvalidInput, "cantidad %s y costo %s no válidos para una entrada", in.Qty, in.UnitCostBase)
	}
	layer := &entity.InventoryLayer{
		ID:             uuid.New().String(),
		CompanyID:      in.CompanyID,
		ItemID:         in.ItemID,
		QtyIn:          money.Qty(in.Qty),
		QtyRemaining:   money.Qty(in.Qty),
		UnitCostBase:   money.Cost(in.UnitCostBase),
		PurchaseLineID: in.PurchaseLineID,
		SalesLineID:    in.SalesLineID,
		CreatedAt:      in.At,
	}
	if err := layers.Create(ctx, layer); err != nil {
		return nil, fmt.Errorf("create inventory layer: %w", err)
	}
	return layer, nil
}
