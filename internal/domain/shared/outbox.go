package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus tracks relay delivery of an outbox entry
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "PENDING"
	OutboxStatusSent    OutboxStatus = "SENT"
)

// OutboxEntry is a serialized domain event waiting for an external relay.
// It is written in the transaction of the change that produced it.
type OutboxEntry struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	EventID       uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	Payload       []byte
	Status        OutboxStatus
	CreatedAt     time.Time
}

// NewOutboxEntry wraps an encoded event as a pending entry of the event's store
func NewOutboxEntry(event DomainEvent, payload []byte) *OutboxEntry {
	return &OutboxEntry{
		ID:            uuid.New(),
		TenantID:      event.TenantID(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		Payload:       payload,
		Status:        OutboxStatusPending,
		CreatedAt:     event.OccurredAt(),
	}
}

// OutboxRepository persists outbox entries
type OutboxRepository interface {
	Save(ctx context.Context, entries ...*OutboxEntry) error
	FindPending(ctx context.Context, tenantID uuid.UUID, limit int) ([]*OutboxEntry, error)
}

// EventRecorder writes domain events to the outbox inside the caller's
// transaction.
type EventRecorder interface {
	Record(ctx context.Context, events ...DomainEvent) error
}
