package repository

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// JournalRepository persistencia de asientos y sus líneas.
type JournalRepository interface {
	// Create inserta cabecera y líneas.
	Create(ctx context.Context, j *entity.Journal) error
	GetByID(ctx context.Context, id string) (*entity.Journal, error)
	// GetForUpdate bloquea cabecera y líneas (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Journal, error)
	// MarkPosted persiste número, estado y sello de contabilización.
	MarkPosted(ctx context.Context, j *entity.Journal) error
	// GetLine devuelve un apunte junto con su asiento (sin líneas hermanas).
	GetLine(ctx context.Context, lineID string) (*entity.JournalLine, *entity.Journal, error)
}
