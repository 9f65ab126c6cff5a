package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const redeliveryHeader = "x-redeliveries"

// AMQPQueue stores jobs in a durable RabbitMQ queue so they survive restarts.
type AMQPQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	name    string
	opts    Options
	logger  *zap.Logger
	mu      sync.Mutex
}

func NewAMQPQueue(url, name string, opts Options, logger *zap.Logger) (*AMQPQueue, error) {
	opts = opts.withDefaults()

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.Qos(opts.Workers, 0, false); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	logger.Info("RabbitMQ queue initialized", zap.String("queue", name))
	return &AMQPQueue{
		conn:    conn,
		channel: channel,
		name:    name,
		opts:    opts,
		logger:  logger,
	}, nil
}

func (q *AMQPQueue) Publish(ctx context.Context, job Job) error {
	return q.publish(ctx, job, 0)
}

func (q *AMQPQueue) publish(ctx context.Context, job Job, redeliveries int) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	err = q.channel.PublishWithContext(ctx,
		"",     // exchange
		q.name, // routing key
		false,  // mandatory
		false,  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{redeliveryHeader: int32(redeliveries)},
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}
	return nil
}

func (q *AMQPQueue) Consume(ctx context.Context, handler Handler) error {
	deliveries, err := q.channel.Consume(
		q.name, // queue
		"",     // consumer
		false,  // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < q.opts.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					q.process(ctx, worker, handler, d)
				}
			}
		}(i)
	}

	wg.Wait()
	return ctx.Err()
}

func (q *AMQPQueue) process(ctx context.Context, worker int, handler Handler, d amqp.Delivery) {
	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil {
		q.logger.Error("Dropping malformed job", zap.Int("worker", worker), zap.Error(err))
		_ = d.Reject(false)
		return
	}

	redeliveries := redeliveryCount(d.Headers)
	job.Final = redeliveries >= q.opts.MaxRedeliveries
	herr := handler(ctx, job)
	if herr == nil {
		_ = d.Ack(false)
		return
	}

	if job.Final {
		q.logger.Error("Job permanently failed",
			zap.Int("worker", worker),
			zap.Int64("lead_id", job.LeadID),
			zap.String("template_id", job.TemplateID),
			zap.Int("deliveries", redeliveries+1),
			zap.Error(herr),
		)
		_ = d.Ack(false)
		return
	}

	q.logger.Warn("Job failed, redelivering",
		zap.Int("worker", worker),
		zap.Int64("lead_id", job.LeadID),
		zap.Int("deliveries", redeliveries+1),
		zap.Error(herr),
	)
	if !sleepCtx(ctx, q.opts.Backoff*time.Duration(redeliveries+1)) {
		_ = d.Nack(false, true)
		return
	}
	if err := q.publish(ctx, job, redeliveries+1); err != nil {
		q.logger.Error("Failed to republish job", zap.Error(err))
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func redeliveryCount(headers amqp.Table) int {
	switch v := headers[redeliveryHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func (q *AMQPQueue) Close() error {
	if q.channel != nil {
		if err := q.channel.Close(); err != nil {
			q.logger.Warn("Error closing channel", zap.Error(err))
		}
	}
	if q.conn != nil {
		if err := q.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return nil
}
