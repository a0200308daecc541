// Package fx resuelve tasas de cambio por fecha exacta.
//
// Convención: una tasa (base, quote, rate) significa 1 base = rate * quote.
// Para pasar un importe en moneda quote a la moneda base se divide por rate.
// La contabilización pide GetRate(empresa, fecha, moneda base, moneda del documento).
package fx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/money"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// RateCache caché opcional de tasas ya resueltas.
type RateCache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, key string, rate decimal.Decimal) error
	Delete(ctx context.Context, keys ...string) error
}

// Resolver busca la tasa de la empresa y, si no existe, la global.
type Resolver struct {
	repo  repository.ExchangeRateRepository
	cache RateCache
}

// NewResolver construye el resolvedor. cache puede ser nil.
func NewResolver(repo repository.ExchangeRateRepository, cache RateCache) *Resolver {
	return &Resolver{repo: repo, cache: cache}
}

// GetRate devuelve cuántas unidades de quote vale 1 unidad de base en la fecha.
// Orden de búsqueda: empresa directa, empresa inversa, global directa, global
// inversa. Una fila inversa (quote, base) devuelve 1/rate. Sin interpolación
// ni fecha cercana: si no hay fila exacta devuelve ErrRateNotFound.
//
// La caché se indexa por el ámbito que aportó la tasa (empresa o global); las
// ausencias no se cachean.
func (r *Resolver) GetRate(ctx context.Context, companyID string, date time.Time, base, quote string) (decimal.Decimal, error) {
	base, err := NormalizeCode(base)
	if err != nil {
		return decimal.Zero, err
	}
	quote, err = NormalizeCode(quote)
	if err != nil {
		return decimal.Zero, err
	}
	if base == quote {
		return decimal.NewFromInt(1), nil
	}
	day := entity.DateOnly(date)

	scopes := []string{companyID}
	if companyID != "" {
		scopes = append(scopes, "")
	}
	for _, scope := range scopes {
		key := cacheKey(scope, day, base, quote)
		if r.cache != nil {
			if rate, ok, err := r.cache.Get(ctx, key); err == nil && ok {
				return rate, nil
			}
		}
		rate, err := r.lookup(ctx, scope, day, base, quote)
		if err != nil {
			return decimal.Zero, err
		}
		if rate.IsPositive() {
			if r.cache != nil {
				_ = r.cache.Set(ctx, key, rate)
			}
			return rate, nil
		}
	}
	return decimal.Zero, domain.Invalid(domain.ErrRateNotFound, "%s->%s el %s", base, quote, day.Format("2006-01-02"))
}

// Invalidate borra de la caché el par en ambos sentidos para el ámbito dado
// (companyID vacío = global). Se llama tras escribir tasas.
func (r *Resolver) Invalidate(ctx context.Context, companyID string, date time.Time, base, quote string) error {
	if r.cache == nil {
		return nil
	}
	base, err := NormalizeCode(base)
	if err != nil {
		return err
	}
	quote, err = NormalizeCode(quote)
	if err != nil {
		return err
	}
	day := entity.DateOnly(date)
	return r.cache.Delete(ctx, cacheKey(companyID, day, base, quote), cacheKey(companyID, day, quote, base))
}

func (r *Resolver) lookup(ctx context.Context, scope string, day time.Time, base, quote string) (decimal.Decimal, error) {
	direct, err := r.repo.Find(ctx, scope, day, base, quote)
	if err != nil {
		return decimal.Zero, fmt.Errorf("find rate: %w", err)
	}
	if direct != nil && direct.Rate.IsPositive() {
		return direct.Rate, nil
	}
	inverse, err := r.repo.Find(ctx, scope, day, quote, base)
	if err != nil {
		return decimal.Zero, fmt.Errorf("find inverse rate: %w", err)
	}
	if inverse != nil && inverse.Rate.IsPositive() {
		return money.Rate(decimal.NewFromInt(1).Div(inverse.Rate)), nil
	}
	return decimal.Zero, nil
}

// ToBase convierte un importe en moneda de transacción a moneda base (amount / rate).
func ToBase(amountTx, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return money.Amount(amountTx)
	}
	return money.Amount(amountTx.Div(rate))
}

// NormalizeCode valida un código ISO 4217 y lo devuelve en mayúsculas.
func NormalizeCode(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", domain.Invalid(domain.ErrInvalidInput, "moneda %q no es un código ISO 4217", code)
	}
	return unit.String(), nil
}

func cacheKey(companyID string, day time.Time, base, quote string) string {
	scope := companyID
	if scope == "" {
		scope = "global"
	}
	return fmt.Sprintf("fx:%s:%s:%s:%s", scope, day.Format("2006-01-02"), base, quote)
}
