package repository

import (
	"context"

	"github.com/jhoicas/erp-posting/internal/domain/entity"
)

// CompanyRepository define el puerto de lectura de entidades legales.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
