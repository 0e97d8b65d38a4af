package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AatishKamble/swapify/config"
	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/repository"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"gopkg.in/gomail.v2"
)

const (
	maxPublishRetries = 3
	publishTimeout    = 10 * time.Second
	maxReadBackoff    = 30 * time.Second
)

type EventServiceImpl struct {
	outboxRepo   repository.OutboxRepository
	historyRepo  repository.OrderHistoryRepository
	userRepo     repository.UserRepository
	producer     MessageWriter
	reader       MessageReader
	cb           *gobreaker.CircuitBreaker[int]
	mailer       Mailer
	config       *config.Config
	retryBackoff time.Duration
	readBackoff  time.Duration
}

// CreateEventService wires the outbox relay and the order event consumer.
// mailer may be nil, in which case no confirmation mail is sent.
func CreateEventService(outboxRepo repository.OutboxRepository, historyRepo repository.OrderHistoryRepository, userRepo repository.UserRepository, producer MessageWriter, reader MessageReader, cb *gobreaker.CircuitBreaker[int], mailer Mailer, config *config.Config) EventService {
	return &EventServiceImpl{
		outboxRepo:   outboxRepo,
		historyRepo:  historyRepo,
		userRepo:     userRepo,
		producer:     producer,
		reader:       reader,
		cb:           cb,
		mailer:       mailer,
		config:       config,
		retryBackoff: time.Second,
		readBackoff:  time.Second,
	}
}

// RelayOutboxEvents publishes pending events oldest first. The batch stops at
// the first failure so events of one order keep their order on the topic.
func (s *EventServiceImpl) RelayOutboxEvents() {
	ctx := log.Logger.WithContext(context.Background())

	events, err := s.outboxRepo.GetUnpublishedEvents(ctx, s.config.OutboxConfig.BatchSize)
	if err != nil {
		return
	}

	for _, event := range events {
		if err := s.publishEvent(ctx, event); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "RelayOutboxEvents").Str("event_id", event.EventID).Msg("")

			if err := s.outboxRepo.IncrementEventAttempts(ctx, event.ID); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "RelayOutboxEvents").Msg("")
			}
			return
		}

		if err := s.outboxRepo.MarkEventPublished(ctx, event.ID, time.Now()); err != nil {
			return
		}
	}
}

func (s *EventServiceImpl) publishEvent(ctx context.Context, event domain.OutboxEvent) (err error) {
	kafkaMsg := dto.KafkaMessage{
		EventID:   event.EventID,
		EventType: event.EventType,
		Data:      event.Payload,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxPublishRetries; i++ {
		_, err = s.cb.Execute(func() (int, error) {
			writeCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			defer cancel()

			return 1, s.producer.WriteMessages(writeCtx, kafka.Message{
				Key:   []byte(event.AggregateID),
				Value: jsonMsg,
			})
		})
		if err == nil {
			return nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Int("attempt", i+1).Msg("")
		time.Sleep(s.retryBackoff * time.Duration(i+1))
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxPublishRetries, err)
}

func (s *EventServiceImpl) ConsumeEvent(ctx context.Context) {
	ctx = log.Logger.WithContext(ctx)

	backoff := s.readBackoff
	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}

			log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Dur("retry_in", backoff).Msg("")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			backoff = min(backoff*2, maxReadBackoff)
			continue
		}

		backoff = s.readBackoff

		if err := s.HandleMessage(ctx, msg); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "ConsumeEvent").Msg("")
		}
	}
}

// HandleMessage projects one order event into the status history. Redelivered
// events are absorbed by the history store.
func (s *EventServiceImpl) HandleMessage(ctx context.Context, msg kafka.Message) (err error) {
	var receivedMsg dto.KafkaMessage
	if err = json.Unmarshal(msg.Value, &receivedMsg); err != nil {
		return err
	}

	switch receivedMsg.EventType {
	case domain.EventOrderCreated, domain.EventOrderStatusUpdated, domain.EventOrderCancelled:
	default:
		log.Ctx(ctx).Info().Str("component", "HandleMessage").Str("event_type", receivedMsg.EventType).Msg("skipping event")
		return nil
	}

	dataBytes, err := json.Marshal(receivedMsg.Data)
	if err != nil {
		return err
	}

	var payload domain.OrderEventPayload
	if err = json.Unmarshal(dataBytes, &payload); err != nil {
		return err
	}

	err = s.historyRepo.AddHistory(ctx, domain.OrderStatusHistory{
		EventID:     receivedMsg.EventID,
		OrderID:     payload.OrderID,
		EventType:   receivedMsg.EventType,
		OrderStatus: string(payload.OrderStatus),
		OccurredAt:  payload.OccurredAt,
	})
	if err != nil {
		return err
	}

	if receivedMsg.EventType == domain.EventOrderCreated {
		if err := s.sendOrderConfirmation(ctx, payload); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "HandleMessage").Str("order_id", payload.OrderID).Msg("")
		}
	}

	return nil
}

func (s *EventServiceImpl) sendOrderConfirmation(ctx context.Context, payload domain.OrderEventPayload) error {
	if s.mailer == nil {
		return nil
	}

	userID, err := parseObjectID(payload.UserID)
	if err != nil {
		return errs.NewSideEffectError("order confirmation mail", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return errs.NewSideEffectError("order confirmation mail", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.mailer.From())
	message.SetHeader("To", user.Email)
	message.SetHeader("Subject", "Your Swapify order has been placed")
	message.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\nWe received your order %s with %d item(s) totalling %.2f.\n\nSwapify",
		user.FirstName, payload.OrderID, payload.TotalItems, payload.TotalPrice))

	return errs.NewSideEffectError("order confirmation mail", s.mailer.Send(message))
}
