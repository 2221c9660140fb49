package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerReader is the read side used for identity resolution
type CustomerReader interface {
	// FindByIDForTenant finds a customer by ID within a store
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindByIdentityKey finds customers whose primary or alternate value of
	// the field normalizes to key, oldest first (created_at, then id).
	FindByIdentityKey(ctx context.Context, tenantID uuid.UUID, field ContactField, key string) ([]*Customer, error)
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	CustomerReader

	// FindByIDForUpdate loads a customer and locks its row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// LockIdentityKeys serializes concurrent resolution of the same contact
	// keys for the rest of the transaction
	LockIdentityKeys(ctx context.Context, tenantID uuid.UUID, keys []string) error

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForTenant deletes a customer within a store
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
