package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/config"
	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/phone"
	"github.com/popeskul/lead-messenger/internal/provider"
	"github.com/popeskul/lead-messenger/internal/queue"
	"github.com/popeskul/lead-messenger/internal/repository/memstore"
	"github.com/popeskul/lead-messenger/internal/service"
	"github.com/popeskul/lead-messenger/internal/template"
)

var errTimeout = errors.New("provider request timed out")

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeSender answers sends through reply, keyed by normalized phone.
type fakeSender struct {
	mu    sync.Mutex
	seq   int
	sent  []provider.SendRequest
	reply func(req provider.SendRequest) (*provider.SendResult, error)
}

func (s *fakeSender) Send(_ context.Context, req provider.SendRequest) (*provider.SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)
	if s.reply != nil {
		return s.reply(req)
	}
	s.seq++
	return &provider.SendResult{Accepted: true, MessageID: messageID(s.seq)}, nil
}

func (s *fakeSender) Sent() []provider.SendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]provider.SendRequest(nil), s.sent...)
}

func messageID(n int) string {
	return fmt.Sprintf("wamid.%04d", n)
}

// fakeResolver reports every phone deliverable unless listed.
type fakeResolver struct {
	mu        sync.Mutex
	overrides map[string]provider.Resolution
	forgotten []string
}

func (r *fakeResolver) Resolve(_ context.Context, phone string) provider.Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.overrides[phone]; ok {
		return res
	}
	return provider.Resolution{Reachability: provider.Deliverable, ContactRef: phone}
}

func (r *fakeResolver) Forget(phone string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forgotten = append(r.forgotten, phone)
}

func (r *fakeResolver) set(phone string, res provider.Resolution) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overrides == nil {
		r.overrides = make(map[string]provider.Resolution)
	}
	r.overrides[phone] = res
}

func testConfig() *config.Config {
	return &config.Config{
		Provider: config.ProviderConfig{
			Timeout:             5,
			PermanentErrorCodes: []string{"131026"},
		},
		Phone: phone.DefaultConfig(),
		Retry: config.RetryConfig{
			MaxAttempts:       3,
			BaseDelaySeconds:  60,
			Multiplier:        4,
			Jitter:            0.2,
			IntervalSeconds:   30,
			BatchSize:         100,
			StaleAfterMinutes: 10,
		},
		Sequence: config.SequenceConfig{IntervalSeconds: 60, BatchSize: 100},
		Templates: []models.Template{
			{ID: "welcome", ProviderName: "welcome_v2", Language: "fr", Body: "Bonjour {{ first_name }}", Params: []string{"first_name"}},
			{ID: "followup", Language: "fr", Body: "Toujours interesse par {{ program }} ?", Params: []string{"program"}},
			{ID: "last_call", Language: "fr", Body: "Derniere chance {{ name }}"},
		},
	}
}

type harness struct {
	cfg      *config.Config
	clock    *clock
	store    *memstore.Store
	sender   *fakeSender
	resolver *fakeResolver
	queue    *queue.MemoryQueue
	svc      *service.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithConfig(t, testConfig())
}

func newHarnessWithConfig(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	return newHarnessWith(t, cfg, harnessOptions{})
}

type harnessOptions struct {
	locker service.SweepLocker
	queue  queue.Options
}

func newHarnessWith(t *testing.T, cfg *config.Config, opts harnessOptions) *harness {
	t.Helper()
	if opts.queue == (queue.Options{}) {
		opts.queue = queue.Options{Workers: 4, Buffer: 200}
	}
	logger := zap.NewNop()

	renderer, err := template.NewRenderer(cfg.Templates, logger)
	require.NoError(t, err)

	h := &harness{
		cfg:      cfg,
		clock:    newClock(),
		store:    memstore.New(),
		sender:   &fakeSender{},
		resolver: &fakeResolver{},
		queue:    queue.NewMemoryQueue(opts.queue, logger),
	}
	h.store.SetClock(h.clock.Now)
	t.Cleanup(func() { _ = h.queue.Close() })

	h.svc = service.NewService(cfg, service.Dependencies{
		Repo:       h.store,
		Normalizer: phone.MustNew(cfg.Phone),
		Resolver:   h.resolver,
		Sender:     h.sender,
		Breaker:    provider.NewCircuitBreaker("whatsapp", &cfg.Provider.CircuitBreaker, logger),
		Renderer:   renderer,
		Queue:      h.queue,
		Locker:     opts.locker,
		Now:        h.clock.Now,
	}, logger)
	return h
}

func (h *harness) createLead(t *testing.T, name, phone string) *models.Lead {
	t.Helper()
	lead, err := h.svc.Lead.Create(context.Background(), &service.CreateLeadInput{
		Name:   name,
		Phone:  phone,
		Source: "facebook",
	})
	require.NoError(t, err)
	return lead
}

func (h *harness) lead(t *testing.T, id int64) *models.Lead {
	t.Helper()
	lead, err := h.store.Lead().GetByID(context.Background(), id)
	require.NoError(t, err)
	return lead
}

// consume runs the worker pool until the test ends.
func (h *harness) consume(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.queue.Consume(ctx, h.svc.Worker.Handle)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}
