package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"skin-price-service/internal/application/services"
	"skin-price-service/internal/infrastructure/catalog"
	"skin-price-service/internal/infrastructure/config"
	"skin-price-service/internal/infrastructure/logging"
	"skin-price-service/internal/infrastructure/metrics"
	"skin-price-service/internal/infrastructure/ratelimit"
	"skin-price-service/internal/infrastructure/rates"
	cacherepo "skin-price-service/internal/infrastructure/repositories/cache"
	historyrepo "skin-price-service/internal/infrastructure/repositories/history"
	"skin-price-service/internal/infrastructure/steam"
	"skin-price-service/internal/infrastructure/web/handlers"
	"skin-price-service/internal/infrastructure/web/server"
)

const serviceVersion = "1.0.0"

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := setupLogging(cfg.Logging); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	ctx := logging.WithRequestID(context.Background(), logging.GenerateRequestID())
	logging.Info(ctx, "Starting skin price service", logging.Fields{
		"version":         serviceVersion,
		"cache_backend":   cfg.Cache.Backend,
		"history_backend": cfg.History.Backend,
	})

	catalogIndex, err := catalog.NewIndex(cfg.Catalog.Dir)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to build catalog index", err, nil)
		os.Exit(1)
	}

	cacheBackend, err := cacherepo.NewFromConfig(cfg.Cache)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to create cache backend", err, nil)
		os.Exit(1)
	}
	defer func() {
		_ = cacheBackend.Close()
	}()

	historyStore, err := historyrepo.NewFromConfig(cfg.History)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to create history store", err, nil)
		os.Exit(1)
	}
	defer func() {
		_ = historyStore.Close()
	}()

	metrics.SetServiceInfo(serviceVersion, cfg.Cache.Backend, cfg.History.Backend)

	rateSource := rates.NewFileSource(cfg.Rates.File)
	var refresher *rates.Refresher
	if cfg.Rates.RefreshEnabled {
		refresher = rates.NewRefresher(rateSource, cfg.Rates)
		if err := refresher.Start(ctx); err != nil {
			logging.ErrorWithError(ctx, "Failed to start rate refresher", err, nil)
			os.Exit(1)
		}
		defer refresher.Stop()
	}

	resultCache := cacherepo.NewResultCache(cacheBackend, cfg.Cache.TTL)
	steamClient := steam.NewClient(cfg.Steam)

	resolver := services.NewResolverService(
		resultCache,
		catalogIndex,
		steamClient,
		historyStore,
		rateSource,
		cfg.History,
		cfg.Batch,
	)

	routerHandlers := server.Handlers{
		Price:  handlers.NewPriceHandler(resolver, cfg.Batch.MaxItems),
		Rates:  newRatesHandler(rateSource, refresher),
		Health: handlers.NewHealthHandler(cacheBackend, catalogIndex.SkinCount()),
	}
	router := server.NewRouter(routerHandlers, ratelimit.NewMiddleware(cfg.RateLimit))

	srv := server.NewServer(router, cfg.Server.Port)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logging.ErrorWithError(context.Background(), "HTTP server failed", err, nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info(ctx, "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(shutdownCtx, "Server forced to shutdown", err, nil)
		os.Exit(1)
	}

	logging.Info(ctx, "Shutdown completed", nil)
}

// newRatesHandler keeps the refresher optional: a nil *rates.Refresher must
// not end up as a non-nil interface value inside the handler.
func newRatesHandler(source *rates.FileSource, refresher *rates.Refresher) *handlers.RatesHandler {
	if refresher == nil {
		return handlers.NewRatesHandler(source, source, nil)
	}
	return handlers.NewRatesHandler(source, source, refresher)
}

func setupLogging(cfg config.LoggingConfig) error {
	loggerConfig := logging.DefaultConfig()
	loggerConfig.Level = logging.LogLevelFromString(cfg.Level)
	loggerConfig.Format = logging.LogFormatFromString(cfg.Format)
	loggerConfig.Version = serviceVersion

	logger, err := logging.NewStructuredLogger(loggerConfig)
	if err != nil {
		return err
	}
	logging.SetGlobalLogger(logger)
	return nil
}
