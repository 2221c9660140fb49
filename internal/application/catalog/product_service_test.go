package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/application/scope/scopetest"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates with opening stock", func(t *testing.T) {
		store := scopetest.NewStore()
		svc := NewProductService(store.Repos().Products())

		product, err := svc.Create(ctx, tenantID, CreateProductRequest{
			Name:      "  Enamel Mug ",
			SKU:       "mug-01",
			UnitPrice: decimal.RequireFromString("12.50"),
			Stock:     40,
		})

		require.NoError(t, err)
		assert.Equal(t, "Enamel Mug", product.Name)
		assert.Equal(t, "MUG-01", product.SKU)
		assert.Equal(t, 40, product.Stock)
		assert.Equal(t, 40, store.Stock(product.ID))

		fetched, err := svc.GetByID(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("12.5").Equal(fetched.UnitPrice))
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		svc := NewProductService(scopetest.NewStore().Repos().Products())

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{Name: "Mug", Stock: -1})

		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc := NewProductService(scopetest.NewStore().Repos().Products())

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{Name: "   "})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestProductService_GetByID_OtherTenant(t *testing.T) {
	ctx := context.Background()
	store := scopetest.NewStore()
	svc := NewProductService(store.Repos().Products())

	product, err := svc.Create(ctx, uuid.New(), CreateProductRequest{Name: "Mug", Stock: 1})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, uuid.New(), product.ID)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}
