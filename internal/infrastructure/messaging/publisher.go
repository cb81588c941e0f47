package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/kafka"
)

// Compile-time interface checks.
var (
	_ port.EventPublisher = (*KafkaPublisher)(nil)
	_ port.EventPublisher = (*OutboxPublisher)(nil)
)

// KafkaPublisher pushes domain events straight to the broker. Messages
// are keyed on aggregate ID so a student's events stay ordered within
// their partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	messages := make([]kafka.Message, len(evts))
	for i, evt := range evts {
		messages[i] = kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: evt.Payload(),
			Headers: map[string]string{
				"event_id":   evt.EventID().String(),
				"event_type": evt.EventType(),
			},
		}
	}
	return p.producer.Publish(ctx, p.topic, messages...)
}

// OutboxPublisher stages events in the outbox table instead of
// publishing directly; the relay delivers them.
type OutboxPublisher struct {
	outbox events.OutboxRepository
}

func NewOutboxPublisher(outbox events.OutboxRepository) *OutboxPublisher {
	return &OutboxPublisher{outbox: outbox}
}

func (p *OutboxPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	entries := make([]events.OutboxEntry, len(evts))
	for i, evt := range evts {
		entries[i] = events.NewOutboxEntry(evt)
	}
	if err := p.outbox.Store(ctx, entries); err != nil {
		return fmt.Errorf("stage outbox events: %w", err)
	}
	return nil
}

// OutboxRelay drains staged events to the broker in the background.
type OutboxRelay struct {
	outbox    events.OutboxRepository
	producer  *kafka.Producer
	topic     string
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewOutboxRelay(outbox events.OutboxRepository, producer *kafka.Producer, topic string, interval time.Duration, batchSize int, logger *slog.Logger) *OutboxRelay {
	return &OutboxRelay{
		outbox:    outbox,
		producer:  producer,
		topic:     topic,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run drains the outbox until the context is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox relay pass failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (r *OutboxRelay) drainOnce(ctx context.Context) error {
	entries, err := r.outbox.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("fetch outbox: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(entries))
	ids := make([]uuid.UUID, len(entries))
	for i, entry := range entries {
		messages[i] = kafka.Message{
			Key:   []byte(entry.AggregateID.String()),
			Value: entry.Payload,
			Headers: map[string]string{
				"event_id":   entry.ID.String(),
				"event_type": entry.EventType,
			},
		}
		ids[i] = entry.ID
	}

	if err := r.producer.Publish(ctx, r.topic, messages...); err != nil {
		return fmt.Errorf("relay outbox batch: %w", err)
	}
	if err := r.outbox.MarkPublished(ctx, ids); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}

	r.logger.Debug("outbox batch relayed", slog.Int("events", len(entries)))
	return nil
}
