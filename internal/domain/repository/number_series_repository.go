package repository

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// NumberSeriesRepository contador de numeración. GetForUpdate bloquea la fila
// hasta el final de la transacción.
type NumberSeriesRepository interface {
	GetForUpdate(ctx context.Context, companyID, code string) (*entity.NumberSeries, error)
	UpdateNextNumber(ctx context.Context, series *entity.NumberSeries) error
}
