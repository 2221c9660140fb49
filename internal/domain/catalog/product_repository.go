package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository loads and stores products. Save writes every column;
// stock changes after creation go through the inventory ledger.
type ProductRepository interface {
	// FindByIDForTenant returns ErrProductNotFound for unknown ids and for
	// products of another store
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	Save(ctx context.Context, product *Product) error
}
