package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/lock"
	"catalog-sync/core/logger"
	core "catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/money"
	"catalog-sync/feature/catalog/notify"
	"catalog-sync/feature/catalog/reconcile"
	"catalog-sync/feature/catalog/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runLockKey names the lock every catalog-sync process competes for.
const runLockKey = "catalog-sync:run"

// application holds the wired components shared by the commands.
type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   *store.Store
	storage storage.Client
	service *catalog.Service

	closers []func() error
}

// loadConfig loads and validates configuration and builds the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)
	return cfg, logg, nil
}

// openStore connects to the catalog database and makes sure the defaults exist.
func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger, migrate bool) (*gorm.DB, *store.Store, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))

	st := store.New(db)
	if err := prepareStore(ctx, st, cfg, migrate); err != nil {
		closeDB(db)
		return nil, nil, err
	}
	return db, st, nil
}

func prepareStore(ctx context.Context, st *store.Store, cfg *config.Config, migrate bool) error {
	if migrate {
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate catalog schema: %w", err)
		}
	}
	return st.EnsureDefaults(ctx, store.Defaults{Language: cfg.Catalog.Language, Currency: cfg.Catalog.Currency})
}

// closeDB releases the connection pool behind db.
func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// bootstrap wires the full reconciliation stack from configuration.
func bootstrap(ctx context.Context, migrate bool) (*application, error) {
	cfg, logg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &application{cfg: cfg, logger: logg}

	a.db, a.store, err = openStore(ctx, cfg, logg, migrate)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := a.db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	var locker lock.Locker = lock.NewLocal()
	if cfg.Redis.Enabled {
		rl := lock.NewRedis(cfg.Redis)
		if err := rl.Ping(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, rl.Close)
		locker = rl
		logg.Info("Using redis run lock", zap.String("host", cfg.Redis.Host))
	}

	var archive *catalog.Archive
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		archive = catalog.NewArchive(client, cfg.Storage.Bucket, cfg.Catalog.ReportPrefix)
		if err := archive.EnsureBucket(ctx); err != nil {
			logg.Warn("Report bucket unavailable, reports will not be archived", zap.Error(err))
			archive = nil
		} else {
			a.storage = client
		}
	}

	rounding, err := money.ByName(cfg.Catalog.Rounding)
	if err != nil {
		a.Close()
		return nil, err
	}
	opts := reconcile.DefaultOptions(cfg.Feed.URL)
	opts.StopOnError = cfg.Catalog.StopOnError
	opts.Rounding = rounding

	source := feed.NewClient(cfg.Feed)
	a.closers = append(a.closers, source.Close)

	notifier := notify.New(cfg.Notify, logg)
	if c, ok := notifier.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}

	engine := reconcile.NewEngine(source, a.store, notifier, logg, opts)
	guard := core.NewGuard(locker, runLockKey, cfg.Catalog.LockTTL)
	a.service = catalog.NewService(engine, guard, archive, logg)

	return a, nil
}

// Close releases every resource opened by bootstrap, last opened first.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
	_ = a.logger.Sync()
}
