package repository

import (
	"context"
	"time"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// AccountRepository lectura del plan de cuentas.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Account, error)
}

// FiscalPeriodRepository periodos contables.
type FiscalPeriodRepository interface {
	// FindCovering devuelve el periodo que contiene la fecha, o nil.
	FindCovering(ctx context.Context, companyID string, date time.Time) (*entity.FiscalPeriod, error)
}
