package queue_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/queue"
)

func setupRabbitMQ(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping RabbitMQ integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor: wait.ForLog("Server startup complete").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func TestAMQPQueue_PublishConsume(t *testing.T) {
	url := setupRabbitMQ(t)

	q, err := queue.NewAMQPQueue(url, "test-dispatch", queue.Options{
		Workers:         2,
		MaxRedeliveries: 2,
		Backoff:         10 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ok, flaky int32
	done := make(chan struct{}, 10)
	go func() {
		_ = q.Consume(ctx, func(_ context.Context, job queue.Job) error {
			if job.LeadID == 99 && atomic.AddInt32(&flaky, 1) < 2 {
				return errors.New("lead busy")
			}
			atomic.AddInt32(&ok, 1)
			done <- struct{}{}
			return nil
		})
	}()

	for _, id := range []int64{1, 2, 99} {
		require.NoError(t, q.Publish(ctx, queue.Job{
			LeadID:      id,
			TemplateID:  "welcome",
			TriggeredBy: models.TriggeredByBulk,
			BatchID:     "b-1",
			EnqueuedAt:  time.Now(),
		}))
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Fatal("timed out waiting for deliveries")
		}
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&ok))
	assert.Equal(t, int32(2), atomic.LoadInt32(&flaky))
}
