// Package bootstrap wires the pipeline from configuration for the server and function entry points.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"

	"catalog-import/internal/cache"
	"catalog-import/internal/config"
	"catalog-import/internal/enrichment"
	"catalog-import/internal/handler"
	"catalog-import/internal/imageproc"
	"catalog-import/internal/infrastructure/database"
	"catalog-import/internal/logger"
	"catalog-import/internal/matcher"
	"catalog-import/internal/metrics"
	"catalog-import/internal/repository"
	"catalog-import/internal/service"
	"catalog-import/internal/storage"
	"catalog-import/internal/validator"
)

const poolStatsInterval = 15 * time.Second

// App holds the wired pipeline and everything that must be closed with it.
type App struct {
	Config    *config.Config
	Store     *repository.Store
	Blobs     storage.BlobStore
	Validator *validator.Validator
	Pipeline  *service.PipelineService
	// Checks are the dependency probes served by the health endpoints.
	Checks map[string]handler.HealthCheck

	closers []func()
}

// New builds the store, blob store, master cache, model client and pipeline service.
// On error everything opened so far is closed again.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Checks: make(map[string]handler.HealthCheck),
	}
	ready := false
	defer func() {
		if !ready {
			app.Close()
		}
	}()

	store, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}
	app.Store = store
	app.Checks["store"] = store.Ping

	blobs, err := app.openBlobs(ctx)
	if err != nil {
		return nil, err
	}
	app.Blobs = blobs

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient != nil {
		app.closers = append(app.closers, func() { _ = redisClient.Close() })
		app.Checks["cache"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	masters := cache.NewMasterCache(app.Store.Masters, redisClient, cfg.MasterCacheTTL)

	generator, err := enrichment.NewVertexGenerator(ctx, enrichment.VertexConfig{
		ProjectID:     cfg.GCPProjectID,
		Region:        cfg.VertexRegion,
		Model:         cfg.VertexModel,
		Timeout:       cfg.ModelTimeout,
		RatePerSecond: cfg.ModelRateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("create model client: %w", err)
	}
	app.closers = append(app.closers, func() { _ = generator.Close() })

	app.Validator = validator.NewValidator(cfg.MaxBatchSize)
	app.Pipeline = service.NewPipelineService(
		app.Store.Jobs,
		app.Store.Drafts,
		app.Blobs,
		masters,
		enrichment.NewClient(generator, app.Validator),
		matcher.New(cfg.MatchThreshold),
		imageproc.NewTransformer(cfg.WatermarkOpacity),
		app.Validator,
		service.Options{
			EnrichBatchSize:  cfg.EnrichBatchSize,
			MatchBatchSize:   cfg.MatchBatchSize,
			ProcessBatchSize: cfg.ProcessBatchSize,
			MaxBatchSize:     cfg.MaxBatchSize,
			InvocationBudget: cfg.InvocationBudget,
			BatchHeadroom:    cfg.BatchHeadroom,
			ImageMaxWidth:    cfg.ImageMaxWidth,
			ImageQuality:     cfg.ImageQuality,
			WatermarkKey:     cfg.WatermarkKey,
		},
	)

	logger.Info("Pipeline ready",
		"store", cfg.StoreBackend,
		"blobs", cfg.BlobBackend,
		"model", cfg.VertexModel,
		"cache", redisClient != nil)
	ready = true
	return app, nil
}

// Close releases every client in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStore(ctx context.Context) (*repository.Store, error) {
	cfg := a.Config
	switch cfg.StoreBackend {
	case config.StorePostgres:
		poolConfig := database.PoolConfig{
			Host:              cfg.DBHost,
			Port:              cfg.DBPort,
			User:              cfg.DBUser,
			Password:          cfg.DBPassword,
			Database:          cfg.DBName,
			SSLMode:           cfg.DBSSLMode,
			MaxConns:          cfg.DBMaxConns,
			MinConns:          cfg.DBMinConns,
			MaxConnLifetime:   cfg.DBMaxConnLifetime,
			MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
			HealthCheckPeriod: cfg.DBHealthCheckPeriod,
		}
		pool, err := database.NewPostgres(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if cfg.DBAutoMigrate {
			if err := database.Migrate(poolConfig.URL(), cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, err
			}
		}
		a.closers = append(a.closers, pool.Close)

		collector := metrics.NewPoolStatsCollector(pool)
		collector.Start(poolStatsInterval)
		a.closers = append(a.closers, collector.Stop)

		return &repository.Store{
			Jobs:    repository.NewPostgresJobRepository(pool),
			Drafts:  repository.NewPostgresDraftRepository(pool),
			Masters: repository.NewPostgresMasterRepository(pool),
			Ping: func(ctx context.Context) error {
				metrics.LogHealthCheckMetrics(ctx, pool)
				return database.HealthCheck(ctx, pool)
			},
			Close: pool.Close,
		}, nil

	case config.StoreFirestore:
		client, err := repository.NewFirestoreClient(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, err
		}
		store := repository.NewFirestoreStore(client).Store()
		a.closers = append(a.closers, store.Close)
		return store, nil

	case config.StoreMemory:
		logger.Warn("Using the in-memory store, jobs are lost on restart")
		return repository.NewMemoryStore().Store(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func (a *App) openBlobs(ctx context.Context) (storage.BlobStore, error) {
	cfg := a.Config
	switch cfg.BlobBackend {
	case config.BlobGCS:
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}
		store := storage.NewGCSStore(client, cfg.BlobBucket, cfg.PublicImageURL, cfg.BlobTimeout)
		a.closers = append(a.closers, func() { _ = store.Close() })
		return store, nil

	case config.BlobS3:
		store, err := storage.NewS3Store(ctx, cfg.BlobBucket, cfg.PublicImageURL, cfg.BlobTimeout)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BlobMemory:
		return storage.NewMemoryStore(cfg.PublicImageURL), nil
	}
	return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
}
