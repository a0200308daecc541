// Package rates importa tasas de cambio de fuentes externas.
package rates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/domain/money"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
)

// ECBBase moneda base de las tasas publicadas por el BCE.
const ECBBase = "EUR"

// ErrImportInProgress otra importación tiene el candado.
var ErrImportInProgress = errors.New("ya hay una importación de tasas en curso")

// RateInvalidator descarta tasas cacheadas de un par (ver fx.Resolver).
type RateInvalidator interface {
	Invalidate(ctx context.Context, companyID string, date time.Time, base, quote string) error
}

// DailyRates tasas de un día: 1 EUR = rate * moneda.
type DailyRates struct {
	Date  time.Time
	Rates map[string]decimal.Decimal
}

// Fetcher obtiene las tasas diarias publicadas.
type Fetcher interface {
	FetchDaily(ctx context.Context) (*DailyRates, error)
}

// Locker candado distribuido; unlock libera.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, err error)
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Date    time.Time                  `json:"date"`
	Created int                        `json:"created"`
	Updated int                        `json:"updated"`
	DryRun  bool                       `json:"dry_run"`
	Rates   map[string]decimal.Decimal `json:"rates"`
}

// ImportECBUseCase importa las tasas del BCE como tasas globales.
type ImportECBUseCase struct {
	txRunner    ports.TxRunner
	fetcher     Fetcher
	locker      Locker
	invalidator RateInvalidator
	log         zerolog.Logger
	lockTTL     time.Duration
}

// NewImportECBUseCase construye el caso de uso. locker puede ser nil.
func NewImportECBUseCase(txRunner ports.TxRunner, fetcher Fetcher, locker Locker, log zerolog.Logger) *ImportECBUseCase {
	return &ImportECBUseCase{txRunner: txRunner, fetcher: fetcher, locker: locker, log: log, lockTTL: 2 * time.Minute}
}

// WithInvalidator hace que cada tasa guardada se borre de la caché del
// resolvedor tras el commit.
func (uc *ImportECBUseCase) WithInvalidator(inv RateInvalidator) *ImportECBUseCase {
	uc.invalidator = inv
	return uc
}

const lockKey = "lock:fx:ecb-import"

// Execute descarga las tasas y las guarda (upsert) con fuente ECB. Con dryRun
// solo informa lo que se guardaría.
func (uc *ImportECBUseCase) Execute(ctx context.Context, dryRun bool) (*ImportResult, error) {
	if uc.locker != nil && !dryRun {
		unlock, err := uc.locker.Acquire(ctx, lockKey, uc.lockTTL)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo liberar el candado de importación")
			}
		}()
	}

	daily, err := uc.fetcher.FetchDaily(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch ecb rates: %w", err)
	}
	res := &ImportResult{Date: entity.DateOnly(daily.Date), DryRun: dryRun, Rates: make(map[string]decimal.Decimal, len(daily.Rates))}
	codes := make([]string, 0, len(daily.Rates))
	for code, rate := range daily.Rates {
		if !rate.IsPositive() || code == ECBBase {
			continue
		}
		codes = append(codes, code)
		res.Rates[code] = money.Rate(rate)
	}
	sort.Strings(codes)
	if dryRun {
		return res, nil
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		for _, code := range codes {
			created, err := r.Rates.Upsert(ctx, &entity.ExchangeRate{
				ID:        uuid.New().String(),
				Date:      res.Date,
				Base:      ECBBase,
				Quote:     code,
				Rate:      res.Rates[code],
				Source:    entity.RateSourceECB,
				FetchedAt: now,
			})
			if err != nil {
				return fmt.Errorf("upsert rate %s: %w", code, err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.invalidator != nil {
		for _, code := range codes {
			if err := uc.invalidator.Invalidate(ctx, "", res.Date, ECBBase, code); err != nil {
				uc.log.Warn().Err(err).Str("quote", code).Msg("no se pudo invalidar la tasa en caché")
			}
		}
	}
	uc.log.Info().
		Str("date", res.Date.Format("2006-01-02")).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Msg("tasas BCE importadas")
	return res, nil
}
