package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ErrReturnNotFound is returned when a return does not exist in the store
var ErrReturnNotFound = shared.NewNotFoundError("RETURN_NOT_FOUND", "Return")

// ReturnStatus represents the status of an order return
type ReturnStatus string

const (
	ReturnStatusSubmitted ReturnStatus = "SUBMITTED"
	ReturnStatusApproved  ReturnStatus = "APPROVED"
	ReturnStatusRejected  ReturnStatus = "REJECTED"
	ReturnStatusRefunded  ReturnStatus = "REFUNDED"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusSubmitted, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusRefunded:
		return true
	}
	return false
}

// CountsAgainstOrder reports whether units in this status consume the
// order's returnable quantity
func (s ReturnStatus) CountsAgainstOrder() bool {
	return s != ReturnStatusRejected
}

func (s ReturnStatus) String() string {
	return string(s)
}

// ReturnHistoryEntry is one line of a return's audit log
type ReturnHistoryEntry struct {
	ID        uuid.UUID    `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Status    ReturnStatus `json:"status"`
	Actor     string       `json:"actor"`
	Note      string       `json:"note,omitempty"`
}

// OrderReturn is a request to send back part or all of an order.
// History is kept newest first.
type OrderReturn struct {
	shared.TenantAggregateRoot
	OrderID          uuid.UUID
	CustomerID       *uuid.UUID
	ReturnedQuantity int
	Reason           string
	Status           ReturnStatus
	RefundAmount     decimal.Decimal
	Restocked        bool
	History          []ReturnHistoryEntry
}

// ReturnedQuantity sums the units of returns that still count against the order
func ReturnedQuantity(returns []*OrderReturn) int {
	total := 0
	for _, r := range returns {
		if r.Status.CountsAgainstOrder() {
			total += r.ReturnedQuantity
		}
	}
	return total
}

// RestockedQuantity sums the units that returns have already put back
// into stock
func RestockedQuantity(returns []*OrderReturn) int {
	total := 0
	for _, r := range returns {
		if r.Restocked {
			total += r.ReturnedQuantity
		}
	}
	return total
}

// HeldQuantity is the number of units an active order keeps out of stock:
// its quantity less what its restocked returns gave back
func HeldQuantity(order *Order, returns []*OrderReturn) int {
	held := order.Quantity - RestockedQuantity(returns)
	if held < 0 {
		return 0
	}
	return held
}

// RemainingQuantity is the number of units of the order that can still be returned
func RemainingQuantity(order *Order, returns []*OrderReturn) int {
	remaining := order.Quantity - ReturnedQuantity(returns)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NewOrderReturn creates a submitted return against order. existing must
// hold every return already recorded for the order, read under the order's
// row lock.
func NewOrderReturn(order *Order, existing []*OrderReturn, quantity int, reason, actor string) (*OrderReturn, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if order.Status.IsVoid() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot return items of a %s order", order.Status))
	}
	remaining := RemainingQuantity(order, existing)
	if quantity > remaining {
		return nil, shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("return quantity %d exceeds remaining order quantity (%d available)", quantity, remaining)).
			WithDetail("available", remaining)
	}

	ret := &OrderReturn{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(order.TenantID),
		OrderID:             order.ID,
		CustomerID:          order.CustomerID,
		ReturnedQuantity:    quantity,
		Reason:              strings.TrimSpace(reason),
		Status:              ReturnStatusSubmitted,
		RefundAmount:        order.RefundFor(quantity),
		History:             make([]ReturnHistoryEntry, 0, 1),
	}
	ret.prependHistory(ReturnStatusSubmitted, actor, ret.Reason)

	ret.AddDomainEvent(NewReturnCreatedEvent(ret))

	return ret, nil
}

func (r *OrderReturn) prependHistory(status ReturnStatus, actor, note string) {
	if actor == "" {
		actor = ActorSystem
	}
	entry := ReturnHistoryEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Status:    status,
		Actor:     actor,
		Note:      strings.TrimSpace(note),
	}
	r.History = append([]ReturnHistoryEntry{entry}, r.History...)
}

// Reactivates reports whether moving to newStatus would make a rejected
// return count against the order again
func (r *OrderReturn) Reactivates(newStatus ReturnStatus) bool {
	return !r.Status.CountsAgainstOrder() && newStatus.CountsAgainstOrder()
}

// UpdateStatus records a status change or a note. It reports whether the
// returned units must go back to stock, which happens only on the first
// entry into APPROVED.
func (r *OrderReturn) UpdateStatus(newStatus ReturnStatus, note, actor string) (bool, error) {
	if !newStatus.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown return status %q", newStatus))
	}
	if r.Restocked && (newStatus == ReturnStatusRejected || newStatus == ReturnStatusSubmitted) {
		return false, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Return has been restocked and cannot move to %s", newStatus))
	}

	oldStatus := r.Status
	r.prependHistory(newStatus, actor, note)
	r.Touch()

	if oldStatus == newStatus {
		return false, nil
	}

	r.Status = newStatus
	r.IncrementVersion()
	r.AddDomainEvent(NewReturnStatusChangedEvent(r, oldStatus))

	restock := newStatus == ReturnStatusApproved && !r.Restocked
	if restock {
		r.Restocked = true
	}
	return restock, nil
}
