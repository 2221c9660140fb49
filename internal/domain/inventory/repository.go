package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockStore is the storage primitive behind the ledger. Implementations
// must perform each call as a single atomic statement.
type StockStore interface {
	// DecrementIfAvailable subtracts quantity only when the current stock
	// covers it. ok is false and nothing changes otherwise.
	DecrementIfAvailable(ctx context.Context, tenantID, productID uuid.UUID, quantity int) (ok bool, err error)

	// Increment adds quantity to the product's stock
	Increment(ctx context.Context, tenantID, productID uuid.UUID, quantity int) error

	// Available returns the current stock, or catalog.ErrProductNotFound
	Available(ctx context.Context, tenantID, productID uuid.UUID) (int, error)

	// Lock holds the product's stock row until the transaction ends. Writers
	// that touch an existing order lock its product first.
	Lock(ctx context.Context, tenantID, productID uuid.UUID) error
}
