// Package cache adapta Redis: caché de tasas de cambio y candado distribuido
// para la importación de tasas.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/rates"
	"github.com/jhoicas/erp-posting/pkg/config"
)

var (
	_ fx.RateCache          = (*RateCache)(nil)
	_ rates.Locker          = (*Locker)(nil)
	_ rates.RateInvalidator = (*fx.Resolver)(nil)
)

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RateCache guarda tasas resueltas como texto decimal con expiración.
type RateCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRateCache construye la caché. ttl <= 0 deja las claves sin expiración.
func NewRateCache(rdb redis.Cmdable, ttl time.Duration) *RateCache {
	return &RateCache{rdb: rdb, ttl: ttl}
}

// Get devuelve (tasa, true) si la clave existe.
func (c *RateCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	rate, err := decimal.NewFromString(val)
	if err != nil {
		// valor corrupto: se trata como fallo de caché
		return decimal.Zero, false, nil
	}
	return rate, true, nil
}

// Set guarda la tasa.
func (c *RateCache) Set(ctx context.Context, key string, rate decimal.Decimal) error {
	if err := c.rdb.Set(ctx, key, rate.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete borra las claves; las inexistentes se ignoran.
func (c *RateCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del %v: %w", keys, err)
	}
	return nil
}

// Locker candado con redislock; sin reintentos.
type Locker struct {
	client *redislock.Client
}

// NewLocker construye el candado sobre el cliente Redis.
func NewLocker(rdb redislock.RedisClient) *Locker {
	return &Locker{client: redislock.New(rdb)}
}

// Acquire obtiene el candado o devuelve rates.ErrImportInProgress si otro lo tiene.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, rates.ErrImportInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}, nil
}
