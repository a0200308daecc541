package fx_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/domain"
	"github.com/jhoicas/erp-posting/internal/domain/entity"
	"github.com/jhoicas/erp-posting/internal/infrastructure/memory"
)

const company = "c1"

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func putRate(s *memory.Store, companyID, base, quote, rate string) {
	s.PutRate(entity.ExchangeRate{
		ID: companyID + base + quote, CompanyID: companyID, Date: day,
		Base: base, Quote: quote, Rate: d(rate), Source: entity.RateSourceManual,
	})
}

type mapCache struct {
	data map[string]decimal.Decimal
	sets int
}

func (c *mapCache) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	r, ok := c.data[key]
	return r, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, rate decimal.Decimal) error {
	c.data[key] = rate
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// ─── GetRate ─────────────────────────────────────────────────────────────────

func TestGetRate_MismaMonedaEsUno(t *testing.T) {
	r := fx.NewResolver(memory.NewStore().Repos().Rates, nil)

	rate, err := r.GetRate(context.Background(), company, day, "dkk", "DKK")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
}

func TestGetRate_DirectaDeLaEmpresa(t *testing.T) {
	s := memory.NewStore()
	putRate(s, company, "DKK", "EUR", "0.134")
	putRate(s, "", "DKK", "EUR", "0.999")
	r := fx.NewResolver(s.Repos().Rates, nil)

	rate, err := r.GetRate(context.Background(), company, day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.134", rate.String())
}

func TestGetRate_InversaGlobalYConversion(t *testing.T) {
	s := memory.NewStore()
	putRate(s, "", "EUR", "DKK", "8")
	r := fx.NewResolver(s.Repos().Rates, nil)

	rate, err := r.GetRate(context.Background(), company, day.Add(15*time.Hour), "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.125", rate.String())
	assert.Equal(t, "800.00", fx.ToBase(d("100"), rate).StringFixed(2))
}

func TestGetRate_InversaDeEmpresaAntesQueGlobal(t *testing.T) {
	s := memory.NewStore()
	putRate(s, company, "EUR", "DKK", "5")
	putRate(s, "", "DKK", "EUR", "0.125")
	r := fx.NewResolver(s.Repos().Rates, nil)

	rate, err := r.GetRate(context.Background(), company, day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.2", rate.String())
}

func TestGetRate_SinFechaExactaNoEncuentra(t *testing.T) {
	s := memory.NewStore()
	putRate(s, "", "DKK", "EUR", "0.134")
	r := fx.NewResolver(s.Repos().Rates, nil)

	_, err := r.GetRate(context.Background(), company, day.AddDate(0, 0, 1), "DKK", "EUR")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
	assert.True(t, domain.IsValidation(err))
}

func TestGetRate_CodigoInvalido(t *testing.T) {
	r := fx.NewResolver(memory.NewStore().Repos().Rates, nil)

	_, err := r.GetRate(context.Background(), company, day, "DKK", "XX1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetRate_UsaLaCache(t *testing.T) {
	s := memory.NewStore()
	putRate(s, "", "DKK", "EUR", "0.134")
	cache := &mapCache{data: map[string]decimal.Decimal{}}
	r := fx.NewResolver(s.Repos().Rates, cache)
	ctx := context.Background()

	_, err := r.GetRate(ctx, company, day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.data, "fx:global:2024-03-15:DKK:EUR")
	assert.NotContains(t, cache.data, "fx:c1:2024-03-15:DKK:EUR", "la tasa global no se guarda bajo la empresa")

	// la caché manda aunque la fila cambie
	putRate(s, "", "DKK", "EUR", "0.2")
	rate, err := r.GetRate(ctx, company, day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.134", rate.String())
	assert.Equal(t, 1, cache.sets)
}

func TestGetRate_TasaDeEmpresaPosteriorGanaALaGlobalCacheada(t *testing.T) {
	s := memory.NewStore()
	putRate(s, "", "DKK", "EUR", "0.134")
	cache := &mapCache{data: map[string]decimal.Decimal{}}
	r := fx.NewResolver(s.Repos().Rates, cache)
	ctx := context.Background()

	rate, err := r.GetRate(ctx, company, day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.134", rate.String())

	putRate(s, company, "DKK", "EUR", "0.15")
	rate, err = r.GetRate(ctx, company, day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.15", rate.String())
	assert.Contains(t, cache.data, "fx:c1:2024-03-15:DKK:EUR")

	// otra empresa sigue usando la global cacheada
	rate, err = r.GetRate(ctx, "c2", day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.134", rate.String())
}

func TestInvalidate_BorraAmbosSentidos(t *testing.T) {
	s := memory.NewStore()
	putRate(s, "", "DKK", "EUR", "0.134")
	cache := &mapCache{data: map[string]decimal.Decimal{}}
	r := fx.NewResolver(s.Repos().Rates, cache)
	ctx := context.Background()

	_, err := r.GetRate(ctx, company, day, "DKK", "EUR")
	require.NoError(t, err)
	_, err = r.GetRate(ctx, company, day, "EUR", "DKK")
	require.NoError(t, err)
	require.Len(t, cache.data, 2)

	putRate(s, "", "DKK", "EUR", "0.2")
	require.NoError(t, r.Invalidate(ctx, "", day, "eur", "dkk"))
	assert.Empty(t, cache.data)

	rate, err := r.GetRate(ctx, company, day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.2", rate.String())
}

func TestInvalidate_SinCacheNoFalla(t *testing.T) {
	r := fx.NewResolver(memory.NewStore().Repos().Rates, nil)
	assert.NoError(t, r.Invalidate(context.Background(), company, day, "DKK", "EUR"))
}

func TestNormalizeCode(t *testing.T) {
	code, err := fx.NormalizeCode(" eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", code)

	_, err = fx.NormalizeCode("EURO")
	assert.Error(t, err)
}
