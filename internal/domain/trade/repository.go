package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByIDForTenant finds an order by ID within a store
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate loads an order and locks its row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// ReassignCustomer points every order of one customer at another
	ReassignCustomer(ctx context.Context, tenantID, from, to uuid.UUID) (int64, error)
}

// ReturnRepository defines the interface for order return persistence
type ReturnRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*OrderReturn, error)

	// FindByIDForUpdate loads a return and locks its row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*OrderReturn, error)

	// FindByOrder lists the returns of an order, newest first
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]*OrderReturn, error)

	Save(ctx context.Context, ret *OrderReturn) error

	// ReassignCustomer points every return of one customer at another
	ReassignCustomer(ctx context.Context, tenantID, from, to uuid.UUID) (int64, error)
}
