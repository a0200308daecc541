package repository

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// SalesDocumentRepository documentos de venta con sus líneas.
type SalesDocumentRepository interface {
	Create(ctx context.Context, doc *entity.SalesDocument) error
	GetByID(ctx context.Context, id string) (*entity.SalesDocument, error)
	// GetForUpdate bloquea la fila del documento y carga sus líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.SalesDocument, error)
	// Update persiste la cabecera (estado, números, totales, sellos).
	Update(ctx context.Context, doc *entity.SalesDocument) error
	AddLine(ctx context.Context, line *entity.SalesLine) error
}

// PurchaseDocumentRepository documentos de compra con sus líneas.
type PurchaseDocumentRepository interface {
	Create(ctx context.Context, doc *entity.PurchaseDocument) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseDocument, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseDocument, error)
	Update(ctx context.Context, doc *entity.PurchaseDocument) error
	AddLine(ctx context.Context, line *entity.PurchaseLine) error
}
