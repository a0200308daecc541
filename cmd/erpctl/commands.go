package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-posting/internal/application/fx"
	"github.com/jhoicas/erp-posting/internal/application/numbering"
	"github.com/jhoicas/erp-posting/internal/application/ports"
	"github.com/jhoicas/erp-posting/internal/application/rates"
	"github.com/jhoicas/erp-posting/internal/infrastructure/cache"
	"github.com/jhoicas/erp-posting/internal/infrastructure/ecb"
	"github.com/jhoicas/erp-posting/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-posting/pkg/config"
	"github.com/jhoicas/erp-posting/pkg/logger"
)

// env estado compartido por los subcomandos.
type env struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Herramientas operativas del motor de contabilización",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "erpctl"})
			return nil
		},
	}
	root.AddCommand(newMigrateCmd(e), newFetchECBCmd(e), newAllocateCmd(e))
	return root
}

func (e *env) pool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL embebidas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				return err
			}
			for _, name := range applied {
				e.log.Info().Str("file", name).Msg("migración aplicada")
			}
			return nil
		},
	}
}

func newFetchECBCmd(e *env) *cobra.Command {
	var (
		dryRun bool
		url    string
	)
	cmd := &cobra.Command{
		Use:   "fetch-ecb-rates",
		Short: "Importa las tasas diarias del BCE como tasas globales (base EUR)",
		Example: `  erpctl fetch-ecb-rates --dry-run
  erpctl fetch-ecb-rates --url https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if url == "" {
				url = e.cfg.ECB.URL
			}
			fetcher := ecb.NewFetcher(url, e.cfg.ECB.Timeout())

			// dry-run no toca la base de datos
			var txRunner ports.TxRunner
			var locker rates.Locker
			var invalidator rates.RateInvalidator
			if !dryRun {
				pool, err := e.pool(ctx)
				if err != nil {
					return err
				}
				defer pool.Close()
				txRunner = postgres.NewTxRunner(pool)
				if e.cfg.Redis.Addr != "" {
					rdb, err := cache.NewClient(ctx, e.cfg.Redis)
					if err != nil {
						return err
					}
					defer rdb.Close()
					locker = cache.NewLocker(rdb)
					invalidator = fx.NewResolver(postgres.NewExchangeRateRepository(pool), cache.NewRateCache(rdb, e.cfg.Redis.FXCacheTTL()))
				}
			}

			uc := rates.NewImportECBUseCase(txRunner, fetcher, locker, e.log)
			if invalidator != nil {
				uc.WithInvalidator(invalidator)
			}
			res, err := uc.Execute(ctx, dryRun)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Descarga y valida sin escribir")
	cmd.Flags().StringVar(&url, "url", "", "URL del feed (por defecto ECB_URL)")
	return cmd
}

func newAllocateCmd(e *env) *cobra.Command {
	var companyID, series string
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Asigna el siguiente número de una serie",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			number, err := numbering.NewAllocator(postgres.NewTxRunner(pool)).Allocate(ctx, companyID, series)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "ID de la entidad")
	cmd.Flags().StringVar(&series, "series", "", "Código de la serie")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("series")
	return cmd
}
