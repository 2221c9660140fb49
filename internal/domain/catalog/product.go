package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ErrProductNotFound is returned when a product does not exist in the store
var ErrProductNotFound = shared.NewNotFoundError("PRODUCT_NOT_FOUND", "Product")

// Product is a sellable item of a store. Stock is the number of units
// available for new orders and never goes negative.
type Product struct {
	shared.TenantAggregateRoot
	Name      string
	SKU       string
	UnitPrice decimal.Decimal
	Stock     int
}

// NewProduct creates a product with an initial stock level
func NewProduct(tenantID uuid.UUID, name, sku string, unitPrice decimal.Decimal, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		SKU:                 strings.ToUpper(strings.TrimSpace(sku)),
		UnitPrice:           unitPrice,
		Stock:               stock,
	}, nil
}
