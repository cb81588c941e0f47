package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent provides a default implementation of DomainEvent. Concrete
// events embed it and add their typed fields on top.
type BaseEvent struct {
	id            uuid.UUID
	eventType     string
	aggregateID   uuid.UUID
	aggregateType string
	occurredAt    time.Time
	payload       []byte
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current
// time. The payload value is JSON-marshalled; a payload that cannot be
// marshalled is recorded as null rather than failing the transition that
// produced the event.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, payload any) BaseEvent {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("null")
	}
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
		payload:       raw,
	}
}

// EventID returns the unique identifier for this event.
func (e BaseEvent) EventID() uuid.UUID { return e.id }

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID returns the identifier of the aggregate that produced this event.
func (e BaseEvent) AggregateID() uuid.UUID { return e.aggregateID }

// AggregateType returns the type name of the aggregate that produced this event.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// Payload returns the serialized event payload.
func (e BaseEvent) Payload() []byte { return e.payload }

// Collector is embedded in aggregates to gather domain events during state
// transitions.
type Collector struct {
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *Collector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Events returns the collected domain events without clearing them.
func (c *Collector) Events() []DomainEvent {
	return c.events
}

// Drain returns the collected domain events and clears the internal slice.
func (c *Collector) Drain() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
