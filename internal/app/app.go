package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coindesk/internal/adapters"
	"coindesk/internal/adapters/badgerdb"
	"coindesk/internal/adapters/cache"
	"coindesk/internal/adapters/httpclient"
	"coindesk/internal/adapters/postgres"
	"coindesk/internal/api"
	"coindesk/internal/config"
	"coindesk/internal/platform/db"
	httpserver "coindesk/internal/platform/http"
	"coindesk/internal/price"
	"coindesk/internal/price/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, fetches the current prices once and serves HTTP
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, initial fetch)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	repo, closeRepo, err := openRepository(startupCtx, appCfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Read cache
	var priceCache adapters.PriceCache = cache.Nop{}
	if appCfg.Cache.MaxItems > 0 {
		ristrettoCache, cacheErr := cache.NewPriceCache(appCfg.Cache.MaxItems)
		if cacheErr != nil {
			logrus.WithError(cacheErr).Error("Failed to create price cache")
			return cacheErr
		}
		defer ristrettoCache.Close()
		priceCache = ristrettoCache
	}

	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	priceClient := httpclient.NewCoinDeskClient(baseHTTPClient, appCfg.CoinDeskAPI.URL)

	priceService := price.NewService(repo, priceCache)
	fetcher := price.NewFetcher(priceClient, repo)

	// Initial fetch; any failure aborts startup
	if _, fetchErr := fetcher.FetchAndPersistAll(startupCtx); fetchErr != nil {
		logrus.WithError(fetchErr).Error("Initial price fetch failed")
		return fetchErr
	}
	logrus.Info("✅ Initial price fetch successful")

	if appCfg.Scheduler.RefetchIntervalSec > 0 {
		scheduler := price.NewScheduler(fetcher, time.Duration(appCfg.Scheduler.RefetchIntervalSec)*time.Second)
		// Ensure scheduler stops before storage closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	priceHandler := handler.NewPriceHandler(priceService, fetcher)
	router := api.NewRouter(priceHandler)

	logrus.Info("Starting http server")
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// openRepository opens the configured storage backend. The returned func releases it.
func openRepository(ctx context.Context, appCfg *config.AppConfig) (adapters.PriceRepository, func(), error) {
	switch appCfg.Storage.Driver {
	case config.StorageDriverBadger:
		bdb, err := badgerdb.Open(appCfg.Storage.BadgerDir)
		if err != nil {
			logrus.WithError(err).Error("Error opening badger")
			return nil, nil, err
		}
		repo, err := badgerdb.NewPriceRepository(bdb)
		if err != nil {
			_ = bdb.Close()
			return nil, nil, err
		}
		logrus.WithField("dir", appCfg.Storage.BadgerDir).Info("✅ Badger storage opened")
		return repo, func() {
			if closeErr := repo.Close(); closeErr != nil {
				logrus.Errorf("Badger sequence release error: %v", closeErr)
			}
			if closeErr := bdb.Close(); closeErr != nil {
				logrus.Errorf("Badger close error: %v", closeErr)
			}
		}, nil

	case config.StorageDriverPostgres:
		pool, err := db.CreatePoolAndPing(ctx, appCfg.DbServer)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to db")
			return nil, nil, err
		}
		if err = db.Migrate(ctx, pool); err != nil {
			pool.Close()
			logrus.WithError(err).Error("Error applying migrations")
			return nil, nil, err
		}
		logrus.Info("✅ Postgres connection successful")
		return postgres.NewPriceRepository(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", appCfg.Storage.Driver)
	}
}
