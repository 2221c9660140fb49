package event

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// OutboxPublisher publishes domain events to the outbox within a transaction
type OutboxPublisher struct {
	serializer *EventSerializer
}

// NewOutboxPublisher creates a new outbox publisher
func NewOutboxPublisher(serializer *EventSerializer) *OutboxPublisher {
	return &OutboxPublisher{
		serializer: serializer,
	}
}

// PublishWithTx publishes events to the outbox within the provided transaction.
// Events are persisted atomically with the aggregate changes.
func (p *OutboxPublisher) PublishWithTx(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := p.serializer.Serialize(event)
		if err != nil {
			return err
		}
		entries = append(entries, shared.NewOutboxEntry(event, payload))
	}

	return NewGormOutboxRepository(tx).Save(ctx, entries...)
}

// Recorder binds the publisher to one transaction
func (p *OutboxPublisher) Recorder(tx *gorm.DB) shared.EventRecorder {
	return &txRecorder{publisher: p, tx: tx}
}

type txRecorder struct {
	publisher *OutboxPublisher
	tx        *gorm.DB
}

func (r *txRecorder) Record(ctx context.Context, events ...shared.DomainEvent) error {
	return r.publisher.PublishWithTx(ctx, r.tx, events...)
}
