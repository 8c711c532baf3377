package events

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/fjod/go_storefront/internal/repository"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderPublisher drains the order_events outbox into Kafka. Rows stay
// unpublished until the write is confirmed, so delivery is at-least-once.
type OrderPublisher struct {
	timeout   time.Duration
	tick      time.Duration
	batchSize int
	repo      repository.OrderEventRepository
	writer    messageWriter
	log       zerolog.Logger
}

func NewOrderPublisher(repo repository.OrderEventRepository, log zerolog.Logger, topic string, brokers ...string) *OrderPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OrderPublisher{
		timeout:   5 * time.Second,
		tick:      time.Second,
		batchSize: 100,
		repo:      repo,
		writer:    w,
		log:       log.With().Str("component", "order_publisher").Logger(),
	}
}

func (p *OrderPublisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.publishPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OrderPublisher) publishPending(ctx context.Context) {
	events, err := p.repo.UnpublishedOrderEvents(ctx, p.batchSize)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to fetch unpublished order events")
		return
	}

	for _, event := range events {
		if errPublish := p.publish(ctx, event); errPublish != nil {
			p.log.Error().Err(errPublish).Int64("event_id", event.ID).Msg("failed to publish order event")
			continue
		}

		if errMark := p.repo.MarkOrderEventPublished(ctx, event.ID); errMark != nil {
			p.log.Error().Err(errMark).Int64("event_id", event.ID).Msg("failed to mark order event as published")
			continue
		}
	}
}

func (p *OrderPublisher) publish(ctx context.Context, event repository.OrderEvent) error {
	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
}
