package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrder       = "Order"
	AggregateTypeOrderReturn = "OrderReturn"
)

// Event type constants
const (
	EventTypeOrderCreated         = "OrderCreated"
	EventTypeOrderStatusChanged   = "OrderStatusChanged"
	EventTypeOrderQuantityChanged = "OrderQuantityChanged"
	EventTypeReturnCreated        = "ReturnCreated"
	EventTypeReturnStatusChanged  = "ReturnStatusChanged"
)

// OrderCreatedEvent is published when an order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	CustomerID *uuid.UUID      `json:"customer_id,omitempty"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		ProductID:       order.ProductID,
		Quantity:        order.Quantity,
		Total:           order.Total,
	}
}

// OrderStatusChangedEvent is published when an order moves to a new status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderQuantityChangedEvent is published after an administrative quantity edit
type OrderQuantityChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
}

// NewOrderQuantityChangedEvent creates a new OrderQuantityChangedEvent
func NewOrderQuantityChangedEvent(order *Order, oldQuantity int) *OrderQuantityChangedEvent {
	return &OrderQuantityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderQuantityChanged, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OldQuantity:     oldQuantity,
		NewQuantity:     order.Quantity,
	}
}

// ReturnCreatedEvent is published when a return is submitted
type ReturnCreatedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID       `json:"return_id"`
	OrderID      uuid.UUID       `json:"order_id"`
	Quantity     int             `json:"quantity"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// NewReturnCreatedEvent creates a new ReturnCreatedEvent
func NewReturnCreatedEvent(ret *OrderReturn) *ReturnCreatedEvent {
	return &ReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnCreated, AggregateTypeOrderReturn, ret.ID, ret.TenantID),
		ReturnID:        ret.ID,
		OrderID:         ret.OrderID,
		Quantity:        ret.ReturnedQuantity,
		RefundAmount:    ret.RefundAmount,
	}
}

// ReturnStatusChangedEvent is published when a return moves to a new status
type ReturnStatusChangedEvent struct {
	shared.BaseDomainEvent
	ReturnID  uuid.UUID    `json:"return_id"`
	OrderID   uuid.UUID    `json:"order_id"`
	OldStatus ReturnStatus `json:"old_status"`
	NewStatus ReturnStatus `json:"new_status"`
}

// NewReturnStatusChangedEvent creates a new ReturnStatusChangedEvent
func NewReturnStatusChangedEvent(ret *OrderReturn, oldStatus ReturnStatus) *ReturnStatusChangedEvent {
	return &ReturnStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnStatusChanged, AggregateTypeOrderReturn, ret.ID, ret.TenantID),
		ReturnID:        ret.ID,
		OrderID:         ret.OrderID,
		OldStatus:       oldStatus,
		NewStatus:       ret.Status,
	}
}
