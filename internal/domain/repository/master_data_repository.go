package repository

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// ItemRepository artículos y grupos.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetGroup(ctx context.Context, id string) (*entity.ItemGroup, error)
}

// VatCodeRepository códigos de IVA.
type VatCodeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.VatCode, error)
}

// DebtorRepository clientes y grupos de clientes.
type DebtorRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Debtor, error)
	GetGroup(ctx context.Context, id string) (*entity.DebtorGroup, error)
}

// CreditorRepository proveedores.
type CreditorRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Creditor, error)
}
