package repository

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// OpenItemRepository partidas abiertas AR/AP.
type OpenItemRepository interface {
	Create(ctx context.Context, item *entity.OpenItem) error
	GetForUpdate(ctx context.Context, id string) (*entity.OpenItem, error)
	// LatestARForSalesDocumentForUpdate bloquea la partida AR más reciente del documento (nil si no hay).
	LatestARForSalesDocumentForUpdate(ctx context.Context, salesDocumentID string) (*entity.OpenItem, error)
	UpdateRemaining(ctx context.Context, item *entity.OpenItem) error
	// ListOpenByDebtor partidas AR con saldo, por vencimiento.
	ListOpenByDebtor(ctx context.Context, companyID, debtorID string) ([]*entity.OpenItem, error)
}

// SettlementRepository liquidaciones.
type SettlementRepository interface {
	Create(ctx context.Context, s *entity.Settlement) error
	GetForUpdate(ctx context.Context, id string) (*entity.Settlement, error)
	// MarkSettled persiste importes y sello de aplicación.
	MarkSettled(ctx context.Context, s *entity.Settlement) error
}
