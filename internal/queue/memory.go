package queue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MemoryQueue keeps jobs in a buffered channel. Jobs are lost on restart; the
// retry sweep picks up whatever state they left behind.
type MemoryQueue struct {
	jobs   chan Job
	done   chan struct{}
	opts   Options
	logger *zap.Logger

	mu         sync.Mutex
	closed     bool
	publishers sync.WaitGroup
}

func NewMemoryQueue(opts Options, logger *zap.Logger) *MemoryQueue {
	opts = opts.withDefaults()
	return &MemoryQueue{
		jobs:   make(chan Job, opts.Buffer),
		done:   make(chan struct{}),
		opts:   opts,
		logger: logger,
	}
}

// Publish blocks while the buffer is full, until ctx ends or the queue closes.
func (q *MemoryQueue) Publish(ctx context.Context, job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.publishers.Add(1)
	q.mu.Unlock()
	defer q.publishers.Done()

	select {
	case q.jobs <- job:
		return nil
	case <-q.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Consume(ctx context.Context, handler Handler) error {
	var wg sync.WaitGroup
	for i := 0; i < q.opts.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-q.jobs:
					if !ok {
						return
					}
					q.process(ctx, worker, handler, job)
				}
			}
		}(i)
	}

	wg.Wait()
	return ctx.Err()
}

func (q *MemoryQueue) process(ctx context.Context, worker int, handler Handler, job Job) {
	for attempt := 0; ; attempt++ {
		job.Final = attempt >= q.opts.MaxRedeliveries
		err := handler(ctx, job)
		if err == nil {
			return
		}

		if job.Final {
			q.logger.Error("Job permanently failed",
				zap.Int("worker", worker),
				zap.Int64("lead_id", job.LeadID),
				zap.String("template_id", job.TemplateID),
				zap.Int("deliveries", attempt+1),
				zap.Error(err),
			)
			return
		}

		q.logger.Warn("Job failed, redelivering",
			zap.Int("worker", worker),
			zap.Int64("lead_id", job.LeadID),
			zap.Int("deliveries", attempt+1),
			zap.Error(err),
		)
		if !sleepCtx(ctx, q.opts.Backoff*time.Duration(attempt+1)) {
			return
		}
	}
}

// Close stops accepting jobs and releases blocked publishers. Consumers drain
// what is buffered until their context ends.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.done)
	q.mu.Unlock()

	q.publishers.Wait()
	close(q.jobs)
	return nil
}

// Len returns the number of buffered jobs.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}
