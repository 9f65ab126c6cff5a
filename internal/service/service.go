// Package service holds the messaging engine: the dispatcher state machine,
// the retry and sequence sweeps, bulk sends and the provider callbacks.
package service

import (
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/phone"
	"github.com/popeskul/lead-messenger/internal/queue"
	"github.com/popeskul/lead-messenger/internal/repository"
)

type Service struct {
	Dispatch  DispatchService
	Lead      LeadService
	Bulk      BulkService
	Sequence  SequenceService
	Webhook   WebhookService
	Retry     RetryService
	Scheduler SchedulerService
	Health    HealthService
	Worker    *Worker
}

// Dependencies are the infrastructure pieces the services run on. Index, Locker
// and Redis are nil when Redis is not configured.
type Dependencies struct {
	Repo       repository.Repository
	Normalizer *phone.Normalizer
	Resolver   ContactResolver
	Sender     MessageSender
	Breaker    BreakerReporter
	Renderer   MessageRenderer
	Queue      queue.Queue
	Index      MessageIndex
	Locker     SweepLocker
	Redis      *redis.Client
	Now        func() time.Time
}

func NewService(cfg *config.Config, deps Dependencies, logger *zap.Logger) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	dispatcher := NewDispatcher(DispatcherDeps{
		Repo:        deps.Repo,
		Normalizer:  deps.Normalizer,
		Resolver:    deps.Resolver,
		Sender:      deps.Sender,
		Renderer:    deps.Renderer,
		Policy:      NewRetryPolicy(&cfg.Retry, cfg.Provider.PermanentErrorCodes),
		Index:       deps.Index,
		SendTimeout: time.Duration(cfg.Provider.Timeout) * time.Second,
		Now:         now,
	}, logger)

	sequenceService := NewSequenceService(&cfg.Sequence, deps.Repo, dispatcher, deps.Renderer, deps.Locker, now, logger)
	retryService := NewRetryService(&cfg.Retry, deps.Repo, dispatcher, deps.Locker, now, logger)
	schedulerService := NewSchedulerService(cfg, retryService, sequenceService, logger)

	return &Service{
		Dispatch:  dispatcher,
		Lead:      NewLeadService(deps.Repo, deps.Normalizer, deps.Resolver, sequenceService, deps.Queue, cfg.Messaging.AutoSendTemplate, now, logger),
		Bulk:      NewBulkService(deps.Repo, deps.Renderer, deps.Queue, now, logger),
		Sequence:  sequenceService,
		Webhook:   NewWebhookService(deps.Repo, dispatcher, sequenceService, deps.Normalizer, deps.Index, logger),
		Retry:     retryService,
		Scheduler: schedulerService,
		Health:    NewHealthService(deps.Repo, deps.Redis, schedulerService, deps.Breaker),
		Worker:    NewWorker(dispatcher, deps.Repo, logger),
	}
}
