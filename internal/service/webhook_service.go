package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/phone"
	"github.com/popeskul/lead-messenger/internal/repository"
)

// StatusEvent is an asynchronous delivery status for a previously accepted message.
type StatusEvent struct {
	ProviderMessageID string
	Status            models.DeliveryStatus
	ErrorCode         string
	ErrorMessage      string
	At                time.Time
}

// ReplyEvent signals that the contact behind Phone wrote back.
type ReplyEvent struct {
	Phone string
	At    time.Time
}

// WebhookEvents are the events carried by one provider webhook delivery.
type WebhookEvents struct {
	Statuses []StatusEvent
	Replies  []ReplyEvent
}

// providerStatuses maps provider status names to delivery statuses. "read"
// implies delivery; anything not listed is ignored.
var providerStatuses = map[string]models.DeliveryStatus{
	"sent":      models.StatusSent,
	"delivered": models.StatusDelivered,
	"read":      models.StatusDelivered,
	"failed":    models.StatusFailed,
}

// ParseWebhook extracts status and inbound message events from a WhatsApp
// Business webhook body. Malformed entries are skipped.
func ParseWebhook(body []byte, now time.Time) *WebhookEvents {
	events := &WebhookEvents{}

	gjson.GetBytes(body, "entry").ForEach(func(_, entry gjson.Result) bool {
		entry.Get("changes").ForEach(func(_, change gjson.Result) bool {
			value := change.Get("value")

			value.Get("statuses").ForEach(func(_, st gjson.Result) bool {
				status, ok := providerStatuses[st.Get("status").String()]
				id := st.Get("id").String()
				if !ok || id == "" {
					return true
				}
				ev := StatusEvent{
					ProviderMessageID: id,
					Status:            status,
					At:                unixOr(st.Get("timestamp"), now),
				}
				if e := st.Get("errors.0"); e.Exists() {
					ev.ErrorCode = e.Get("code").String()
					ev.ErrorMessage = e.Get("title").String()
					if details := e.Get("error_data.details").String(); details != "" {
						ev.ErrorMessage += ": " + details
					}
				}
				events.Statuses = append(events.Statuses, ev)
				return true
			})

			value.Get("messages").ForEach(func(_, msg gjson.Result) bool {
				from := msg.Get("from").String()
				if from == "" {
					return true
				}
				events.Replies = append(events.Replies, ReplyEvent{
					Phone: from,
					At:    unixOr(msg.Get("timestamp"), now),
				})
				return true
			})
			return true
		})
		return true
	})

	return events
}

func unixOr(ts gjson.Result, fallback time.Time) time.Time {
	if sec := ts.Int(); sec > 0 {
		return time.Unix(sec, 0).UTC()
	}
	return fallback
}

type webhookService struct {
	repo       repository.Repository
	dispatcher *Dispatcher
	sequences  SequenceService
	normalizer *phone.Normalizer
	index      MessageIndex
	logger     *zap.Logger
}

// NewWebhookService handles provider callbacks. index may be nil, in which
// case records are looked up in the database only.
func NewWebhookService(
	repo repository.Repository,
	dispatcher *Dispatcher,
	sequences SequenceService,
	normalizer *phone.Normalizer,
	index MessageIndex,
	logger *zap.Logger,
) WebhookService {
	return &webhookService{
		repo:       repo,
		dispatcher: dispatcher,
		sequences:  sequences,
		normalizer: normalizer,
		index:      index,
		logger:     logger.With(zap.String("component", "webhook")),
	}
}

func (s *webhookService) HandleStatus(ctx context.Context, ev *StatusEvent) error {
	rec, err := s.findRecord(ctx, ev.ProviderMessageID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		s.logger.Debug("Status for unknown message", zap.String("provider_message_id", ev.ProviderMessageID))
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.dispatcher.ApplyStatus(ctx, rec, ev)
	return err
}

func (s *webhookService) findRecord(ctx context.Context, providerID string) (*models.DispatchRecord, error) {
	if s.index != nil {
		id, ok, err := s.index.Lookup(ctx, providerID)
		if err != nil {
			s.logger.Warn("Message index lookup failed, falling back to database", zap.Error(err))
		}
		if ok {
			rec, err := s.repo.Dispatch().GetByID(ctx, id)
			if err == nil {
				return rec, nil
			}
			if !errors.Is(err, repository.ErrRecordNotFound) {
				return nil, err
			}
		}
	}
	return s.repo.Dispatch().GetByProviderMessageID(ctx, providerID)
}

// HandleReply stamps every lead with the sender's phone and applies stop-on-reply.
func (s *webhookService) HandleReply(ctx context.Context, ev *ReplyEvent) error {
	normalized, err := s.normalizer.Normalize(ev.Phone)
	if err != nil {
		s.logger.Warn("Reply from unparseable phone", zap.String("phone", ev.Phone))
		return nil
	}

	leads, err := s.repo.Lead().FindByPhone(ctx, normalized)
	if err != nil {
		return fmt.Errorf("failed to find leads by phone: %w", err)
	}
	for _, lead := range leads {
		if err := s.repo.Lead().MarkReplied(ctx, lead.ID, ev.At); err != nil {
			return fmt.Errorf("failed to mark lead %d replied: %w", lead.ID, err)
		}
		if err := s.sequences.HandleReply(ctx, lead.ID, ev.At); err != nil {
			return err
		}
		s.logger.Info("Lead replied", zap.Int64("lead_id", lead.ID))
	}
	return nil
}
