package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEvent is a minimal event used across the package tests
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string, tenantID uuid.UUID) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New(), tenantID),
		Data:            "test data",
	}
}

func TestEventSerializer_Register(t *testing.T) {
	serializer := NewEventSerializer()

	Register[testEvent](serializer, "TestEvent")

	assert.True(t, serializer.IsRegistered("TestEvent"))
	assert.False(t, serializer.IsRegistered("UnknownEvent"))
}

func TestEventSerializer_RoundTrip(t *testing.T) {
	serializer := NewEventSerializer()
	Register[testEvent](serializer, "TestEvent")
	original := newTestEvent("TestEvent", uuid.New())

	data, err := serializer.Serialize(original)
	require.NoError(t, err)

	decoded, err := serializer.Deserialize("TestEvent", data)
	require.NoError(t, err)

	got, ok := decoded.(*testEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventID(), got.EventID())
	assert.Equal(t, original.TenantID(), got.TenantID())
	assert.Equal(t, "test data", got.Data)
}

func TestEventSerializer_Deserialize_Errors(t *testing.T) {
	serializer := NewEventSerializer()
	Register[testEvent](serializer, "TestEvent")

	t.Run("unknown type", func(t *testing.T) {
		_, err := serializer.Deserialize("Nope", []byte(`{}`))
		assert.ErrorContains(t, err, "unknown event type")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := serializer.Deserialize("TestEvent", []byte(`{`))
		assert.ErrorContains(t, err, "failed to unmarshal")
	})
}

func TestEventSerializer_Decode(t *testing.T) {
	serializer := NewEventSerializer()
	Register[testEvent](serializer, "TestEvent")
	event := newTestEvent("TestEvent", uuid.New())
	payload, err := serializer.Serialize(event)
	require.NoError(t, err)

	decoded, err := serializer.Decode(shared.NewOutboxEntry(event, payload))

	require.NoError(t, err)
	assert.Equal(t, event.AggregateID(), decoded.AggregateID())
	assert.Equal(t, "TestAggregate", decoded.AggregateType())
}

func TestRegisterAllEvents(t *testing.T) {
	serializer := NewEventSerializer()
	RegisterAllEvents(serializer)

	assert.Contains(t, serializer.RegisteredTypes(), trade.EventTypeOrderCreated)
	assert.Contains(t, serializer.RegisteredTypes(), inventory.EventTypeStockRestored)

	order, err := trade.NewOrder(uuid.New(), uuid.New(), nil, 2, decimal.NewFromInt(5), true, "")
	require.NoError(t, err)
	events := order.GetDomainEvents()
	require.NotEmpty(t, events)

	data, err := serializer.Serialize(events[0])
	require.NoError(t, err)
	decoded, err := serializer.Deserialize(events[0].EventType(), data)
	require.NoError(t, err)

	created, ok := decoded.(*trade.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, order.ID, created.OrderID)
	assert.True(t, decimal.NewFromInt(10).Equal(created.Total))
}
