package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a domain event staged in the outbox table, written in the
// same transaction as the aggregate it belongs to and relayed to the broker
// asynchronously.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry stages a DomainEvent for relay.
func NewOutboxEntry(event DomainEvent) OutboxEntry {
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       event.Payload(),
		CreatedAt:     event.OccurredAt(),
	}
}

// OutboxRepository is the port for outbox persistence.
type OutboxRepository interface {
	Store(ctx context.Context, entries []OutboxEntry) error
	FetchUnpublished(ctx context.Context, batchSize int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Publisher publishes domain events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, topic string, events ...DomainEvent) error
}
