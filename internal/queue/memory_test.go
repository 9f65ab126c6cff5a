package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/queue"
)

func TestMemoryQueue_DeliversEveryJob(t *testing.T) {
	q := queue.NewMemoryQueue(queue.Options{Workers: 4, Buffer: 100}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		seen = make(map[int64]int)
		wg   sync.WaitGroup
	)
	wg.Add(50)

	go func() {
		_ = q.Consume(ctx, func(_ context.Context, job queue.Job) error {
			mu.Lock()
			seen[job.LeadID]++
			mu.Unlock()
			wg.Done()
			return nil
		})
	}()

	for i := int64(1); i <= 50; i++ {
		require.NoError(t, q.Publish(ctx, queue.Job{LeadID: i, TemplateID: "welcome", TriggeredBy: models.TriggeredByBulk}))
	}

	waitOrFail(t, &wg, 2*time.Second)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 50)
	for id, n := range seen {
		assert.Equal(t, 1, n, "lead %d handled more than once", id)
	}
}

func TestMemoryQueue_Redelivery(t *testing.T) {
	tests := []struct {
		name            string
		maxRedeliveries int
		failures        int32
		wantCalls       int32
	}{
		{name: "succeeds after retries", maxRedeliveries: 3, failures: 2, wantCalls: 3},
		{name: "gives up at ceiling", maxRedeliveries: 2, failures: 10, wantCalls: 3},
		{name: "no redelivery", maxRedeliveries: 0, failures: 1, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queue.NewMemoryQueue(queue.Options{
				Workers:         1,
				MaxRedeliveries: tt.maxRedeliveries,
				Backoff:         time.Millisecond,
			}, zap.NewNop())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var calls int32
			done := make(chan struct{})
			go func() {
				_ = q.Consume(ctx, func(_ context.Context, _ queue.Job) error {
					n := atomic.AddInt32(&calls, 1)
					if n == tt.wantCalls {
						defer close(done)
					}
					if n <= tt.failures {
						return errors.New("lead busy")
					}
					return nil
				})
			}()

			require.NoError(t, q.Publish(ctx, queue.Job{LeadID: 1}))

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("handler was not called enough times")
			}
			time.Sleep(20 * time.Millisecond)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestMemoryQueue_PublishAfterClose(t *testing.T) {
	q := queue.NewMemoryQueue(queue.Options{}, zap.NewNop())
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	err := q.Publish(context.Background(), queue.Job{LeadID: 1})
	assert.ErrorIs(t, err, queue.ErrClosed)
}

func TestMemoryQueue_PublishBlocksWhenFull(t *testing.T) {
	q := queue.NewMemoryQueue(queue.Options{Buffer: 1}, zap.NewNop())
	require.NoError(t, q.Publish(context.Background(), queue.Job{LeadID: 1}))
	assert.Equal(t, 1, q.Len())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Publish(ctx, queue.Job{LeadID: 2})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_CloseReleasesBlockedPublisher(t *testing.T) {
	q := queue.NewMemoryQueue(queue.Options{Buffer: 1}, zap.NewNop())
	require.NoError(t, q.Publish(context.Background(), queue.Job{LeadID: 1}))

	errCh := make(chan error, 1)
	go func() {
		errCh <- q.Publish(context.Background(), queue.Job{LeadID: 2})
	}()
	time.Sleep(20 * time.Millisecond)

	closed := make(chan error, 1)
	go func() {
		closed <- q.Close()
	}()

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("close blocked behind a full buffer")
	}
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, queue.ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("publisher was not released")
	}
}

func TestMemoryQueue_MarksFinalDelivery(t *testing.T) {
	q := queue.NewMemoryQueue(queue.Options{
		Workers:         1,
		MaxRedeliveries: 2,
		Backoff:         time.Millisecond,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		finals []bool
	)
	done := make(chan struct{})
	go func() {
		_ = q.Consume(ctx, func(_ context.Context, job queue.Job) error {
			mu.Lock()
			defer mu.Unlock()
			finals = append(finals, job.Final)
			if job.Final {
				close(done)
			}
			return errors.New("lead busy")
		})
	}()

	require.NoError(t, q.Publish(ctx, queue.Job{LeadID: 1}))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("final delivery never happened")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false, false, true}, finals)
}

func TestMemoryQueue_ConsumeStopsOnCancel(t *testing.T) {
	q := queue.NewMemoryQueue(queue.Options{Workers: 2}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- q.Consume(ctx, func(context.Context, queue.Job) error { return nil })
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("consume did not return after cancel")
	}
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for jobs")
	}
}
