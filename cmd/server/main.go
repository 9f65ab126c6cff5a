// Package main is the entry point for the lead-messenger HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/handler"
	"github.com/popeskul/lead-messenger/internal/middleware"
	"github.com/popeskul/lead-messenger/internal/phone"
	"github.com/popeskul/lead-messenger/internal/provider"
	"github.com/popeskul/lead-messenger/internal/service"
	"github.com/popeskul/lead-messenger/internal/template"
)

const (
	defaultConfigPath = "config.yaml"
	shutdownTimeout   = 10 * time.Second
	sentryFlushWait   = 2 * time.Second
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Fatal("Failed to initialize Sentry", zap.Error(err))
		}
		defer sentry.Flush(sentryFlushWait)
		logger.Info("Sentry initialized", zap.String("environment", cfg.Sentry.Environment))
	}

	repo, closeRepo, err := openRepository(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open repository", zap.Error(err))
	}
	defer closeRepo()

	redisClient, err := openRedis(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	jobs, err := openQueue(&cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to open dispatch queue", zap.Error(err))
	}
	defer func() {
		if err := jobs.Close(); err != nil {
			logger.Error("Failed to close dispatch queue", zap.Error(err))
		}
	}()

	normalizer, err := phone.New(cfg.Phone)
	if err != nil {
		logger.Fatal("Invalid phone configuration", zap.Error(err))
	}
	renderer, err := template.NewRenderer(cfg.Templates, logger)
	if err != nil {
		logger.Fatal("Invalid template catalog", zap.Error(err))
	}
	client := provider.NewClient(&cfg.Provider, logger)
	resolver := provider.NewResolver(client, time.Duration(cfg.Provider.ContactCacheTTL)*time.Second, logger)

	deps := service.Dependencies{
		Repo:       repo,
		Normalizer: normalizer,
		Resolver:   resolver,
		Sender:     client,
		Breaker:    client.Breaker(),
		Renderer:   renderer,
		Queue:      jobs,
		Redis:      redisClient,
	}
	attachRedisHelpers(&deps, redisClient, &cfg.Redis)

	svc := service.NewService(cfg, deps, logger)

	consumeCtx, stopConsumers := context.WithCancel(context.Background())
	var consumers sync.WaitGroup
	consumers.Add(1)
	go func() {
		defer consumers.Done()
		if err := jobs.Consume(consumeCtx, svc.Worker.Handle); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Dispatch workers stopped", zap.Error(err))
		}
	}()

	h := handler.NewHandler(svc, cfg.Webhook, logger)
	router := setupRouter(h)

	var cors *middleware.CORSConfig
	if cfg.Middleware.EnableCORS {
		cors = middleware.DefaultCORSConfig(cfg.Middleware.AllowedOrigins...)
	}
	chain, stopMiddleware := middleware.Chain(&middleware.Config{
		Logger:          logger,
		CORS:            cors,
		RateLimit:       rate.Limit(cfg.Middleware.RateLimit),
		RateLimitBurst:  cfg.Middleware.RateLimitBurst,
		RateLimitExempt: []string{webhookPath},
		RequestTimeout:  time.Duration(cfg.Middleware.RequestTimeout) * time.Second,
	})
	defer stopMiddleware()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      chain(router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := svc.Scheduler.Start(); err != nil {
		logger.Error("Failed to start schedulers on startup", zap.Error(err))
	} else {
		logger.Info("Retry and sequence sweeps started")
	}

	go func() {
		logger.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if svc.Scheduler.IsRunning() {
		if err := svc.Scheduler.Stop(); err != nil {
			logger.Error("Failed to stop schedulers", zap.Error(err))
		}
	}

	stopConsumers()
	consumers.Wait()

	logger.Info("Server exited")
}
