// @title        ERP Posting API
// @version      1.0
// @description  Motor de contabilización por partida doble y liquidación de partidas abiertas.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	_ "github.com/jhoicas/erp-posting/docs"
	"github.com/jhoicas/erp-posting/internal/application/documents"
	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/inventory"
	"github.com/jhoicas/erp-posting/internal/application/ledger"
	"github.com/jhoicas/erp-posting/internal/application/numbering"
	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/application/posting"
	"github.com/jhoicas/erp-posting/internal/application/rates"
	"github.com/jhoicas/erp-posting/internal/application/settlement"
	"github.com/jhoicas/erp-posting/internal/domain/repository"
	"github.com/jhoicas/erp-posting/internal/infrastructure/cache"
	"github.com/jhoicas/erp-posting/internal/infrastructure/ecb"
	"github.com/jhoicas/erp-posting/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/erp-posting/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-posting/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/erp-posting/internal/interfaces/http"
	"github.com/jhoicas/erp-posting/pkg/config"
	"github.com/jhoicas/erp-posting/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner  ports.TxRunner
		rateRepo  repository.ExchangeRateRepository
		closeFunc = func() {}
	)
	switch cfg.App.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		memory.SeedDemo(store, time.Now().Year())
		txRunner, rateRepo = store, store.Repos().Rates
		log.Warn().
			Str("company_id", memory.DemoCompanyID).
			Msg("almacenamiento en memoria con datos de demostración: se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		closeFunc = pool.Close
		txRunner, rateRepo = postgres.NewTxRunner(pool), postgres.NewExchangeRateRepository(pool)
	}
	defer closeFunc()

	// Redis es opcional: sin REDIS_ADDR no hay caché de tasas ni candado de importación.
	var (
		rateCache fx.RateCache
		locker    rates.Locker
	)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible; se continúa sin caché")
		} else {
			defer rdb.Close()
			rateCache = cache.NewRateCache(rdb, cfg.Redis.FXCacheTTL())
			locker = cache.NewLocker(rdb)
		}
	}

	deps := buildDeps(cfg, log, txRunner, rateRepo, rateCache, locker)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP Posting API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func buildDeps(
	cfg *config.Config,
	log zerolog.Logger,
	txRunner ports.TxRunner,
	rateRepo repository.ExchangeRateRepository,
	rateCache fx.RateCache,
	locker rates.Locker,
) httpRouter.RouterDeps {
	resolver := fx.NewResolver(rateRepo, rateCache)
	fetcher := ecb.NewFetcher(cfg.ECB.URL, cfg.ECB.Timeout())
	return httpRouter.RouterDeps{
		Allocator:   numbering.NewAllocator(txRunner),
		Resolver:    resolver,
		ImportECB:   rates.NewImportECBUseCase(txRunner, fetcher, locker, log).WithInvalidator(resolver),
		FIFO:        inventory.NewFIFOUseCase(txRunner),
		Journals:    ledger.NewJournalService(txRunner, resolver, log),
		Vouchers:    ledger.NewVoucherUseCase(txRunner, infrapdf.NewMarotoVoucherGenerator()),
		Documents:   documents.NewService(txRunner),
		Engine:      posting.NewEngine(txRunner, resolver, log),
		Settlements: settlement.NewService(txRunner, log),
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
	}
}
