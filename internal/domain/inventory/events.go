package inventory

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// AggregateTypeProductStock is the aggregate type of stock movement events
const AggregateTypeProductStock = "ProductStock"

// Event type constants
const (
	EventTypeStockReserved = "StockReserved"
	EventTypeStockRestored = "StockRestored"
)

// StockDirection tells whether units left or re-entered stock
type StockDirection string

const (
	StockDirectionReserved StockDirection = "RESERVED"
	StockDirectionRestored StockDirection = "RESTORED"
)

// StockMovedEvent is published whenever the ledger changes a product's stock
type StockMovedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID      `json:"product_id"`
	Direction StockDirection `json:"direction"`
	Quantity  int            `json:"quantity"`
}

// NewStockMovedEvent creates a new StockMovedEvent
func NewStockMovedEvent(tenantID, productID uuid.UUID, direction StockDirection, quantity int) *StockMovedEvent {
	eventType := EventTypeStockReserved
	if direction == StockDirectionRestored {
		eventType = EventTypeStockRestored
	}
	return &StockMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProductStock, productID, tenantID),
		ProductID:       productID,
		Direction:       direction,
		Quantity:        quantity,
	}
}
