package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/cache"
	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/infrastructure/migrate"
	"github.com/popeskul/lead-messenger/internal/queue"
	"github.com/popeskul/lead-messenger/internal/repository"
	"github.com/popeskul/lead-messenger/internal/repository/memstore"
	"github.com/popeskul/lead-messenger/internal/service"
)

// webhookPath is the provider callback prefix; it bypasses the rate limiter.
const webhookPath = "/webhooks/"

const redisPingTimeout = 5 * time.Second

func openRepository(cfg *config.DatabaseConfig, logger *zap.Logger) (repository.Repository, func(), error) {
	if cfg.Driver == "memory" {
		logger.Warn("Using in-memory store, data is lost on restart")
		return memstore.New(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if cfg.AutoMigrate {
		version, err := migrate.NewRunner(db.DB, &migrate.Config{MigrationsPath: cfg.MigrationsPath}).Up()
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("Database schema is up to date", zap.Uint("version", version))
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	logger.Info("Connected to database", zap.String("host", cfg.Host), zap.String("dbname", cfg.DBName))
	return repository.NewRepository(db), closeFn, nil
}

// openRedis returns nil when no host is configured.
func openRedis(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	if cfg.Host == "" {
		logger.Info("Redis not configured, message index and sweep locks disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.GetAddr(), err)
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.GetAddr()))
	return client, nil
}

func openQueue(cfg *config.QueueConfig, logger *zap.Logger) (queue.Queue, error) {
	opts := queue.Options{
		Workers:         cfg.Workers,
		Buffer:          cfg.Buffer,
		MaxRedeliveries: cfg.MaxRedeliveries,
	}

	switch cfg.Driver {
	case "amqp":
		q, err := queue.NewAMQPQueue(cfg.URL, cfg.Name, opts, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Dispatch queue on AMQP", zap.String("queue", cfg.Name))
		return q, nil
	default:
		logger.Info("Dispatch queue in memory", zap.Int("workers", cfg.Workers))
		return queue.NewMemoryQueue(opts, logger), nil
	}
}

// attachRedisHelpers leaves Index and Locker as nil interfaces without a client.
func attachRedisHelpers(deps *service.Dependencies, client *redis.Client, cfg *config.RedisConfig) {
	if client == nil {
		return
	}
	deps.Index = cache.NewMessageIndex(client, time.Duration(cfg.IndexTTLHours)*time.Hour)
	deps.Locker = cache.NewLocker(client)
}
