// Package numbering asigna números de documento consecutivos por serie.
package numbering

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// Allocator asigna números con bloqueo de fila sobre la serie.
// Si la transacción externa aborta después de asignar, el número se pierde
// (hueco): nunca se reutiliza un número ya emitido.
type Allocator struct {
	txRunner ports.TxRunner
}

// NewAllocator construye el asignador.
func NewAllocator(txRunner ports.TxRunner) *Allocator {
	return &Allocator{txRunner: txRunner}
}

// Allocate asigna el siguiente número en su propia transacción.
func (a *Allocator) Allocate(ctx context.Context, companyID, code string) (string, error) {
	var number string
	err := a.txRunner.Run(ctx, func(r repository.Repos) error {
		n, err := AllocateInTx(ctx, r.NumberSeries, companyID, code)
		if err != nil {
			return err
		}
		number = n
		return nil
	})
	return number, err
}

// AllocateInTx bloquea la serie (SELECT FOR UPDATE), lee el número actual,
// persiste el siguiente y devuelve prefix + número rellenado con ceros.
// Debe llamarse con repos atados a la transacción del llamador.
func AllocateInTx(ctx context.Context, repo repository.NumberSeriesRepository, companyID, code string) (string, error) {
	if code == "" {
		return "", domain.MissingConfig("serie de numeración no asignada en la entidad %s", companyID)
	}
	series, err := repo.GetForUpdate(ctx, companyID, code)
	if err != nil {
		return "", fmt.Errorf("lock number series: %w", err)
	}
	if series == nil {
		return "", domain.MissingConfig("la serie %q no existe en la entidad %s", code, companyID)
	}
	number, err := series.Take()
	if err != nil {
		return "", err
	}
	if err := repo.UpdateNextNumber(ctx, series); err != nil {
		return "", fmt.Errorf("update number series: %w", err)
	}
	return number, nil
}
