package ports

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback completo; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
