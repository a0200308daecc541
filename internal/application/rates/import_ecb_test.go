package rates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/rates"
	"github.com/jhoicas/erp-posting/internal/infrastructure/memory"
)

var day = time.Date(2024, 6, 3, 16, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type staticFetcher struct {
	daily *rates.DailyRates
	err   error
	calls int
}

func (f *staticFetcher) FetchDaily(context.Context) (*rates.DailyRates, error) {
	f.calls++
	return f.daily, f.err
}

type fakeLocker struct {
	held     bool
	acquired int
	released int
}

func (l *fakeLocker) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	if l.held {
		return nil, rates.ErrImportInProgress
	}
	l.held = true
	l.acquired++
	return func(context.Context) error {
		l.held = false
		l.released++
		return nil
	}, nil
}

func feed() *staticFetcher {
	return &staticFetcher{daily: &rates.DailyRates{
		Date: day,
		Rates: map[string]decimal.Decimal{
			"DKK": d("7.4593"),
			"USD": d("1.0849"),
			"EUR": d("1"),
			"XXX": decimal.Zero,
		},
	}}
}

func TestExecute_GuardaTasasGlobales(t *testing.T) {
	s := memory.NewStore()
	locker := &fakeLocker{}
	uc := rates.NewImportECBUseCase(s, feed(), locker, zerolog.Nop())

	res, err := uc.Execute(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Len(t, res.Rates, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), res.Date)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)

	// el resolvedor las usa como tasas globales, también en sentido inverso
	resolver := fx.NewResolver(s.Repos().Rates, nil)
	rate, err := resolver.GetRate(context.Background(), "c1", day, "EUR", "DKK")
	require.NoError(t, err)
	assert.Equal(t, "7.4593", rate.String())

	again, err := uc.Execute(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 2, again.Updated)
}

func TestExecute_DryRunNoEscribe(t *testing.T) {
	s := memory.NewStore()
	locker := &fakeLocker{}
	uc := rates.NewImportECBUseCase(s, feed(), locker, zerolog.Nop())

	res, err := uc.Execute(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Len(t, res.Rates, 2)
	assert.Equal(t, 0, locker.acquired)

	found, err := s.Repos().Rates.Find(context.Background(), "", day, "EUR", "DKK")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestExecute_DryRunSinAlmacen(t *testing.T) {
	uc := rates.NewImportECBUseCase(nil, feed(), nil, zerolog.Nop())

	res, err := uc.Execute(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "1.0849", res.Rates["USD"].String())
}

func TestExecute_ImportacionEnCurso(t *testing.T) {
	fetcher := feed()
	uc := rates.NewImportECBUseCase(memory.NewStore(), fetcher, &fakeLocker{held: true}, zerolog.Nop())

	_, err := uc.Execute(context.Background(), false)
	assert.ErrorIs(t, err, rates.ErrImportInProgress)
	assert.Equal(t, 0, fetcher.calls)
}

func TestExecute_ErrorDeDescargaLiberaElCandado(t *testing.T) {
	boom := errors.New("timeout")
	locker := &fakeLocker{}
	uc := rates.NewImportECBUseCase(memory.NewStore(), &staticFetcher{err: boom}, locker, zerolog.Nop())

	_, err := uc.Execute(context.Background(), false)
	assert.ErrorIs(t, err, boom)
	assert.False(t, locker.held)
}

type mapCache struct {
	data map[string]decimal.Decimal
}

func (c *mapCache) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	r, ok := c.data[key]
	return r, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, rate decimal.Decimal) error {
	c.data[key] = rate
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestExecute_ReimportacionInvalidaLaCache(t *testing.T) {
	s := memory.NewStore()
	cache := &mapCache{data: map[string]decimal.Decimal{}}
	resolver := fx.NewResolver(s.Repos().Rates, cache)
	ctx := context.Background()

	fetcher := feed()
	uc := rates.NewImportECBUseCase(s, fetcher, nil, zerolog.Nop()).WithInvalidator(resolver)
	_, err := uc.Execute(ctx, false)
	require.NoError(t, err)

	// ambos sentidos quedan cacheados bajo la clave global
	rate, err := resolver.GetRate(ctx, "c1", day, "EUR", "DKK")
	require.NoError(t, err)
	assert.Equal(t, "7.4593", rate.String())
	_, err = resolver.GetRate(ctx, "c1", day, "DKK", "EUR")
	require.NoError(t, err)
	assert.Contains(t, cache.data, "fx:global:2024-06-03:EUR:DKK")
	assert.Contains(t, cache.data, "fx:global:2024-06-03:DKK:EUR")

	fetcher.daily.Rates["DKK"] = d("7.4601")
	_, err = uc.Execute(ctx, false)
	require.NoError(t, err)
	assert.NotContains(t, cache.data, "fx:global:2024-06-03:EUR:DKK")
	assert.NotContains(t, cache.data, "fx:global:2024-06-03:DKK:EUR")

	rate, err = resolver.GetRate(ctx, "c1", day, "EUR", "DKK")
	require.NoError(t, err)
	assert.Equal(t, "7.4601", rate.String())
}
