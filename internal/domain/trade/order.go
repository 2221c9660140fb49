package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ActorSystem is recorded on timeline entries when no user is known
const ActorSystem = "System"

// ErrOrderNotFound is returned when an order does not exist in the store
var ErrOrderNotFound = shared.NewNotFoundError("ORDER_NOT_FOUND", "Order")

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	return s.IsActive() || s.IsVoid()
}

// IsActive reports whether the order holds reserved stock in this status
func (s OrderStatus) IsActive() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusShipped, OrderStatusCompleted:
		return true
	}
	return false
}

// IsVoid reports whether the order has given its stock back in this status
func (s OrderStatus) IsVoid() bool {
	return s == OrderStatusCancelled || s == OrderStatusRefunded
}

func (s OrderStatus) String() string {
	return string(s)
}

// TimelineEntry is one line of an order's append-only audit log
type TimelineEntry struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Actor       string    `json:"actor"`
}

// Order is a purchase of a single product by a customer of a store
type Order struct {
	shared.TenantAggregateRoot
	CustomerID *uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	Status     OrderStatus
	IsPaid     bool
	Timeline   []TimelineEntry
}

// NewOrder creates a pending order. Stock must already be reserved.
func NewOrder(tenantID, productID uuid.UUID, customerID *uuid.UUID, quantity int, unitPrice decimal.Decimal, isPaid bool, actor string) (*Order, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		ProductID:           productID,
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		Total:               unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		Status:              OrderStatusPending,
		IsPaid:              isPaid,
		Timeline:            make([]TimelineEntry, 0, 1),
	}
	order.appendTimeline(fmt.Sprintf("Order placed for %d unit(s)", quantity), actor)

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

func (o *Order) appendTimeline(description, actor string) {
	if actor == "" {
		actor = ActorSystem
	}
	o.Timeline = append(o.Timeline, TimelineEntry{
		ID:          uuid.New(),
		Description: description,
		Timestamp:   time.Now(),
		Actor:       actor,
	})
}

// ChangeStatus moves the order to a new status. Any status may follow any
// other; stock consequences are decided by the caller from the partitions.
func (o *Order) ChangeStatus(newStatus OrderStatus, actor string) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", newStatus))
	}
	if o.Status == newStatus {
		return nil
	}

	oldStatus := o.Status
	o.Status = newStatus
	o.appendTimeline(fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus), actor)
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, newStatus))

	return nil
}

// ChangeQuantity edits the ordered quantity. The new quantity cannot drop
// below what has already been returned. Returns the change in units.
func (o *Order) ChangeQuantity(quantity, alreadyReturned int, actor string) (int, error) {
	if quantity <= 0 {
		return 0, shared.ErrInvalidQuantity
	}
	if quantity < alreadyReturned {
		return 0, shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("quantity %d is below the %d unit(s) already returned", quantity, alreadyReturned))
	}
	delta := quantity - o.Quantity
	if delta == 0 {
		return 0, nil
	}

	oldQuantity := o.Quantity
	o.Quantity = quantity
	o.Total = o.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	o.appendTimeline(fmt.Sprintf("Quantity changed from %d to %d", oldQuantity, quantity), actor)
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderQuantityChangedEvent(o, oldQuantity))

	return delta, nil
}

// RecordReturn notes a newly submitted return on the timeline
func (o *Order) RecordReturn(ret *OrderReturn, actor string) {
	o.appendTimeline(fmt.Sprintf("Return %s submitted for %d unit(s)", ret.ID, ret.ReturnedQuantity), actor)
	o.Touch()
}

// RefundFor returns the pro-rata share of the order total for qty units
func (o *Order) RefundFor(qty int) decimal.Decimal {
	if o.Quantity <= 0 {
		return decimal.Zero
	}
	return o.Total.Mul(decimal.NewFromInt(int64(qty))).
		Div(decimal.NewFromInt(int64(o.Quantity))).
		Round(2)
}
