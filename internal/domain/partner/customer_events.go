package partner

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeCustomerContactMerged = "CustomerContactMerged"
	EventTypeCustomersMerged       = "CustomersMerged"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Email:           customer.Email,
		Phone:           customer.Phone,
		Address:         customer.Address,
	}
}

// CustomerUpdatedEvent is published when primary contact fields are changed explicitly
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Email:           customer.Email,
		Phone:           customer.Phone,
		Address:         customer.Address,
	}
}

// CustomerContactMergedEvent is published when new contact variants are
// absorbed into an existing customer
type CustomerContactMergedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID      `json:"customer_id"`
	Fields     []ContactField `json:"fields"`
}

// NewCustomerContactMergedEvent creates a new CustomerContactMergedEvent
func NewCustomerContactMergedEvent(customer *Customer, fields []ContactField) *CustomerContactMergedEvent {
	return &CustomerContactMergedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerContactMerged, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Fields:          fields,
	}
}

// CustomersMergedEvent is published when a colliding customer record is
// folded into the surviving one
type CustomersMergedEvent struct {
	shared.BaseDomainEvent
	WinnerID uuid.UUID `json:"winner_id"`
	LoserID  uuid.UUID `json:"loser_id"`
}

// NewCustomersMergedEvent creates a new CustomersMergedEvent
func NewCustomersMergedEvent(winner, loser *Customer) *CustomersMergedEvent {
	return &CustomersMergedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomersMerged, AggregateTypeCustomer, winner.ID, winner.TenantID),
		WinnerID:        winner.ID,
		LoserID:         loser.ID,
	}
}
