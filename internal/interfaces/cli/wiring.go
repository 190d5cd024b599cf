package cli

import (
	"context"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/config"
	"github.com/turtacn/KeyIP-Descriptors/internal/domain/descriptor"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/database/postgres"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/database/redis"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/storage/minio"
	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/http/handlers"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// app is the assembled pipeline with its optional collaborators.
type app struct {
	service   pipeline.Service
	registry  *descriptor.Registry
	collector prometheus.MetricsCollector
	metrics   *prometheus.AppMetrics
	checkers  []handlers.HealthChecker
	closers   []func() error
	logger    logging.Logger
}

// Close releases every connection opened by buildRuntime, newest first.
func (rt *app) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.Warn("close failed", logging.Err(err))
		}
	}
	rt.closers = nil
}

// buildRegistry narrows the built-in catalog by the registry section.
func buildRegistry(cfg *config.Config) (*descriptor.Registry, error) {
	return descriptor.Default(descriptor.Options{
		Include: cfg.Registry.Include,
		Exclude: cfg.Registry.Exclude,
	})
}

func newCollector(cfg *config.Config, logger logging.Logger) (prometheus.MetricsCollector, error) {
	return prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		EnableGoMetrics:      cfg.Metrics.EnableRuntime,
		EnableProcessMetrics: cfg.Metrics.EnableRuntime,
	}, logger)
}

func pipelineOptions(cfg *config.Config) (pipeline.Options, error) {
	in, err := config.ParseDelimiter(cfg.Input.Delimiter)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(err, errors.ErrCodeConfig, "input.delimiter")
	}
	out, err := config.ParseDelimiter(cfg.Output.Delimiter)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(err, errors.ErrCodeConfig, "output.delimiter")
	}
	return pipeline.Options{
		Loader: pipeline.LoaderOptions{Delimiter: in, HasHeader: cfg.Input.HasHeader},
		Export: pipeline.ExportOptions{Delimiter: out, NaNValue: cfg.Output.NaNValue},
		Assembler: pipeline.AssemblerOptions{
			NameColumn:       cfg.Output.NameColumn,
			IdentifierColumn: cfg.Output.IdentifierColumn,
		},
		Workers:   cfg.Evaluator.Workers,
		StoreRows: cfg.Database.StoreRows,
	}, nil
}

// buildRuntime assembles the pipeline service from cfg. The registry is
// built first so a bad selection fails before any connection is opened.
// Enabled cache or sinks that cannot be reached are logged and left out;
// they never prevent a run. Sinks are only connected when withSinks is set.
func buildRuntime(ctx context.Context, cfg *config.Config, logger logging.Logger, withSinks bool) (*app, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return nil, err
	}
	collector, err := newCollector(cfg, logger)
	if err != nil {
		return nil, err
	}

	rt := &app{
		registry:  registry,
		collector: collector,
		metrics:   prometheus.NewAppMetrics(collector),
		logger:    logger,
	}
	rt.checkers = append(rt.checkers, handlers.NewChecker("registry", func(context.Context) error {
		if registry.Len() == 0 {
			return errors.New(errors.ErrCodeRegistryEmpty, "descriptor registry is empty")
		}
		return nil
	}))

	deps := pipeline.Dependencies{
		Registry: registry,
		Parser:   pipeline.SMILESParser{},
		Metrics:  rt.metrics,
		Logger:   logger,
	}

	if cfg.Cache.Enabled {
		if cache := rt.connectCache(ctx, cfg); cache != nil {
			deps.Cache = cache
		}
	}
	if withSinks {
		if store := rt.connectRunStore(ctx, cfg); store != nil {
			deps.RunStore = store
		}
		if artifacts := rt.connectArtifacts(ctx, cfg); artifacts != nil {
			deps.Artifacts = artifacts
		}
		if events := rt.connectEvents(cfg); events != nil {
			deps.Events = events
		}
	}

	svc, err := pipeline.NewService(deps, opts)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.service = svc
	return rt, nil
}

func redisConfig(cfg *config.Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Addr:         cfg.Cache.Addr,
		Password:     cfg.Cache.Password,
		DB:           cfg.Cache.DB,
		PoolSize:     cfg.Cache.PoolSize,
		DialTimeout:  cfg.Cache.DialTimeout,
		ReadTimeout:  cfg.Cache.ReadTimeout,
		WriteTimeout: cfg.Cache.WriteTimeout,
	}
}

func newResultCache(client *redis.Client, cfg *config.Config, logger logging.Logger) *redis.ResultCache {
	return redis.NewResultCache(client, logger.Named("cache"),
		redis.WithPrefix(cfg.Cache.KeyPrefix),
		redis.WithTTL(cfg.Cache.TTL))
}

func (rt *app) connectCache(ctx context.Context, cfg *config.Config) *redis.ResultCache {
	client, err := redis.NewClient(ctx, redisConfig(cfg), rt.logger.Named("redis"))
	if err != nil {
		rt.logger.Warn("result cache disabled", logging.Err(err), logging.Code(err))
		return nil
	}
	rt.closers = append(rt.closers, client.Close)
	rt.checkers = append(rt.checkers, handlers.NewChecker("cache", client.Ping))
	return newResultCache(client, cfg, rt.logger)
}

func (rt *app) connectRunStore(ctx context.Context, cfg *config.Config) *postgres.RunStore {
	if !cfg.Database.Enabled {
		return nil
	}
	if cfg.Database.MigrateOnStart {
		if err := migrateUp(cfg.Database.DSN, rt.logger); err != nil {
			rt.logger.Warn("run store disabled", logging.Err(err), logging.Code(err))
			return nil
		}
	}
	pool, err := postgres.NewConnectionPool(ctx, postgres.PostgresConfig{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, rt.logger.Named("postgres"))
	if err != nil {
		rt.logger.Warn("run store disabled", logging.Err(err), logging.Code(err))
		return nil
	}
	rt.closers = append(rt.closers, func() error { pool.Close(); return nil })
	return postgres.NewRunStore(pool, rt.logger.Named("run_store"))
}

func migrateUp(dsn string, logger logging.Logger) error {
	m, err := postgres.NewMigrator(dsn, logger.Named("migrate"))
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

func (rt *app) connectArtifacts(ctx context.Context, cfg *config.Config) *minio.ArtifactStore {
	if !cfg.Storage.Enabled {
		return nil
	}
	client, err := minio.NewMinIOClient(ctx, &minio.MinIOConfig{
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKey,
		SecretAccessKey: cfg.Storage.SecretKey,
		UseSSL:          cfg.Storage.UseSSL,
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		Prefix:          cfg.Storage.Prefix,
		ExpiryDays:      cfg.Storage.ExpiryDays,
	}, rt.logger.Named("minio"))
	if err != nil {
		rt.logger.Warn("artifact store disabled", logging.Err(err), logging.Code(err))
		return nil
	}
	rt.closers = append(rt.closers, client.Close)
	return minio.NewArtifactStore(client, rt.logger.Named("artifacts"))
}

func (rt *app) connectEvents(cfg *config.Config) *kafka.EventPublisher {
	if !cfg.Messaging.Enabled {
		return nil
	}
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.Messaging.Brokers,
		Topic:        cfg.Messaging.Topic,
		RequiredAcks: cfg.Messaging.RequiredAcks,
		WriteTimeout: cfg.Messaging.WriteTimeout,
		Compression:  cfg.Messaging.Compression,
	}, rt.logger.Named("kafka"))
	if err != nil {
		rt.logger.Warn("event publisher disabled", logging.Err(err), logging.Code(err))
		return nil
	}
	publisher := kafka.NewEventPublisher(producer, rt.logger.Named("events"))
	rt.closers = append(rt.closers, publisher.Close)
	return publisher
}

//Personal.AI order the ending
