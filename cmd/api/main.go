package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/svalverde/stockroom-backend/api/routes"
	"github.com/svalverde/stockroom-backend/internal/catalog"
	"github.com/svalverde/stockroom-backend/internal/parties"
	"github.com/svalverde/stockroom-backend/internal/reports"
	"github.com/svalverde/stockroom-backend/internal/trading"
	"github.com/svalverde/stockroom-backend/pkg/config"
	"github.com/svalverde/stockroom-backend/pkg/db"
	"github.com/svalverde/stockroom-backend/pkg/env"
	"github.com/svalverde/stockroom-backend/pkg/logger"
	"github.com/svalverde/stockroom-backend/pkg/metrics"
	"github.com/svalverde/stockroom-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	partiesRepo := parties.NewRepository(dbClient.DB())
	tradesRepo := trading.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	partiesService, err := parties.NewService(partiesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create parties service", err)
		os.Exit(1)
	}
	tradingService, err := trading.NewService(dbClient, tradesRepo, catalogRepo, partiesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create trading service", err)
		os.Exit(1)
	}
	reportsService, err := reports.NewService(reports.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Store:       dbClient,
			Catalog:     catalogService,
			Parties:     partiesService,
			Trading:     tradingService,
			Reports:     reportsService,
			HTTPMetrics: httpMetrics,
			Gatherer:    registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
