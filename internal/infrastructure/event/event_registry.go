package event

import (
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/trade"
)

// RegisterAllEvents registers every storefront event type so outbox rows
// can be decoded back into typed events
func RegisterAllEvents(s *EventSerializer) {
	Register[partner.CustomerCreatedEvent](s, partner.EventTypeCustomerCreated)
	Register[partner.CustomerUpdatedEvent](s, partner.EventTypeCustomerUpdated)
	Register[partner.CustomerContactMergedEvent](s, partner.EventTypeCustomerContactMerged)
	Register[partner.CustomersMergedEvent](s, partner.EventTypeCustomersMerged)

	Register[trade.OrderCreatedEvent](s, trade.EventTypeOrderCreated)
	Register[trade.OrderStatusChangedEvent](s, trade.EventTypeOrderStatusChanged)
	Register[trade.OrderQuantityChangedEvent](s, trade.EventTypeOrderQuantityChanged)
	Register[trade.ReturnCreatedEvent](s, trade.EventTypeReturnCreated)
	Register[trade.ReturnStatusChangedEvent](s, trade.EventTypeReturnStatusChanged)

	// one payload shape for both directions
	Register[inventory.StockMovedEvent](s, inventory.EventTypeStockReserved)
	Register[inventory.StockMovedEvent](s, inventory.EventTypeStockRestored)
}
