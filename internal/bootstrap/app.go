package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/cassiomorais/storefront/internal/infrastructure/config"
	infraMongo "github.com/cassiomorais/storefront/internal/infrastructure/mongodb"
	"github.com/cassiomorais/storefront/internal/infrastructure/observability"
	infraPostgres "github.com/cassiomorais/storefront/internal/infrastructure/postgres"
	infraRedis "github.com/cassiomorais/storefront/internal/infrastructure/redis"
	"github.com/cassiomorais/storefront/internal/processor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Mongo     *mongo.Client
	Catalog   *mongo.Database
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Processor processor.Processor
	Metrics   *observability.Metrics
}

func New(ctx context.Context, serviceName, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info().Str("service", serviceName).Msg("Starting")

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(serviceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			go func() {
				<-ctx.Done()
				observability.Shutdown(context.Background(), tp)
			}()
			logger.Info().Msg("Tracing enabled")
		}
	}

	metrics := observability.NewMetrics(metricsNamespace, nil)
	logger.Info().Msg("Metrics initialized")

	// The three stores are independent; open them concurrently.
	var (
		mongoClient *mongo.Client
		pool        *pgxpool.Pool
		redisClient *redis.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mongoClient, err = infraMongo.Connect(gctx, &cfg.Catalog)
		if err != nil {
			return fmt.Errorf("connect to catalog store: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pool, err = infraPostgres.NewPool(gctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to order store: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		redisClient, err = infraRedis.NewClient(gctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
		if pool != nil {
			pool.Close()
		}
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, err
	}
	logger.Info().Msg("Connected to catalog store, order store and Redis")

	proc := newProcessor(cfg, logger)
	logger.Info().Str("processor", proc.Name()).Msg("Payment processor configured")

	return &App{
		Config:    cfg,
		Logger:    logger,
		Mongo:     mongoClient,
		Catalog:   mongoClient.Database(cfg.Catalog.Database),
		Pool:      pool,
		Redis:     redisClient,
		Processor: proc,
		Metrics:   metrics,
	}, nil
}

func newProcessor(cfg *config.Config, logger zerolog.Logger) processor.Processor {
	var inner processor.Processor
	switch cfg.Processor.Name {
	case "stripe":
		inner = processor.NewStripeProcessor(
			cfg.Processor.StripeKey,
			cfg.Processor.SuccessURL,
			cfg.Processor.CancelURL,
		)
	default:
		logger.Warn().Msg("Using mock payment processor")
		inner = processor.NewMockProcessor("mock")
	}
	return processor.NewBreakerProcessor(inner)
}

func (a *App) Close() {
	a.Redis.Close()
	a.Pool.Close()
	_ = a.Mongo.Disconnect(context.Background())
}
