package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStockStore struct {
	mu    sync.Mutex
	stock map[uuid.UUID]int
}

func newMemoryStockStore() *memoryStockStore {
	return &memoryStockStore{stock: make(map[uuid.UUID]int)}
}

func (s *memoryStockStore) DecrementIfAvailable(_ context.Context, _, productID uuid.UUID, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.stock[productID]
	if !ok || current < quantity {
		return false, nil
	}
	s.stock[productID] = current - quantity
	return true, nil
}

func (s *memoryStockStore) Increment(_ context.Context, _, productID uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stock[productID]; !ok {
		return catalog.ErrProductNotFound
	}
	s.stock[productID] += quantity
	return nil
}

func (s *memoryStockStore) Available(_ context.Context, _, productID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.stock[productID]
	if !ok {
		return 0, catalog.ErrProductNotFound
	}
	return current, nil
}

func (s *memoryStockStore) Lock(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func TestLedger_Reserve(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("decrements stock", func(t *testing.T) {
		store := newMemoryStockStore()
		productID := uuid.New()
		store.stock[productID] = 10

		event, err := NewLedger(store).Reserve(ctx, tenantID, productID, 4)

		require.NoError(t, err)
		assert.Equal(t, EventTypeStockReserved, event.EventType())
		assert.Equal(t, 6, store.stock[productID])
	})

	t.Run("insufficient stock carries available", func(t *testing.T) {
		store := newMemoryStockStore()
		productID := uuid.New()
		store.stock[productID] = 3

		_, err := NewLedger(store).Reserve(ctx, tenantID, productID, 4)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, 3, domainErr.Details["available"])
		assert.Equal(t, 3, store.stock[productID])
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := NewLedger(newMemoryStockStore()).Reserve(ctx, tenantID, uuid.New(), 1)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewLedger(newMemoryStockStore()).Reserve(ctx, tenantID, uuid.New(), 0)
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("concurrent reservations never oversell", func(t *testing.T) {
		store := newMemoryStockStore()
		productID := uuid.New()
		store.stock[productID] = 50
		ledger := NewLedger(store)

		var wg sync.WaitGroup
		var mu sync.Mutex
		reserved := 0
		for i := 0; i < 40; i++ {
			wg.Add(1)
			go func(qty int) {
				defer wg.Done()
				if _, err := ledger.Reserve(ctx, tenantID, productID, qty); err == nil {
					mu.Lock()
					reserved += qty
					mu.Unlock()
				}
			}(i%3 + 1)
		}
		wg.Wait()

		assert.GreaterOrEqual(t, store.stock[productID], 0)
		assert.Equal(t, 50-reserved, store.stock[productID])
	})
}

func TestLedger_OnStatusChange(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStockStore()
	ledger := NewLedger(store)
	tenantID := uuid.New()
	productID := uuid.New()
	store.stock[productID] = 7

	order, err := trade.NewOrder(tenantID, productID, nil, 5, decimal.NewFromInt(1), false, "")
	require.NoError(t, err)

	tests := []struct {
		name      string
		from, to  trade.OrderStatus
		wantStock int
		wantErr   error
	}{
		{"active to active", trade.OrderStatusPending, trade.OrderStatusShipped, 7, nil},
		{"active to void restores", trade.OrderStatusPending, trade.OrderStatusCancelled, 12, nil},
		{"void to void", trade.OrderStatusCancelled, trade.OrderStatusRefunded, 12, nil},
		{"void to active reserves", trade.OrderStatusCancelled, trade.OrderStatusAccepted, 7, nil},
		{"same status", trade.OrderStatusAccepted, trade.OrderStatusAccepted, 7, nil},
		{"restore again", trade.OrderStatusAccepted, trade.OrderStatusCancelled, 12, nil},
		{"reserve again", trade.OrderStatusCancelled, trade.OrderStatusAccepted, 7, nil},
		{"restore once more", trade.OrderStatusAccepted, trade.OrderStatusCancelled, 12, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.OnStatusChange(ctx, order, nil, tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStock, store.stock[productID])
		})
	}

	t.Run("failed re-reservation leaves stock", func(t *testing.T) {
		store.stock[productID] = 2

		_, err := ledger.OnStatusChange(ctx, order, nil, trade.OrderStatusCancelled, trade.OrderStatusAccepted)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 2, store.stock[productID])
	})
}

func TestLedger_OnStatusChange_SkipsRestockedReturns(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStockStore()
	ledger := NewLedger(store)
	productID := uuid.New()
	store.stock[productID] = 0

	order, err := trade.NewOrder(uuid.New(), productID, nil, 5, decimal.NewFromInt(1), false, "")
	require.NoError(t, err)
	ret, err := trade.NewOrderReturn(order, nil, 2, "", "")
	require.NoError(t, err)
	_, err = ret.UpdateStatus(trade.ReturnStatusApproved, "", "")
	require.NoError(t, err)
	store.stock[productID] = 2
	returns := []*trade.OrderReturn{ret}

	event, err := ledger.OnStatusChange(ctx, order, returns, trade.OrderStatusPending, trade.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 3, event.Quantity)
	assert.Equal(t, 5, store.stock[productID])

	event, err = ledger.OnStatusChange(ctx, order, returns, trade.OrderStatusCancelled, trade.OrderStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, 3, event.Quantity)
	assert.Equal(t, 2, store.stock[productID])

	t.Run("fully restocked order holds nothing", func(t *testing.T) {
		ret.ReturnedQuantity = 5

		event, err := ledger.OnStatusChange(ctx, order, returns, trade.OrderStatusAccepted, trade.OrderStatusCancelled)

		require.NoError(t, err)
		assert.Nil(t, event)
		assert.Equal(t, 2, store.stock[productID])
	})
}

func TestLedger_OnQuantityChange(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStockStore()
	productID := uuid.New()
	store.stock[productID] = 10
	ledger := NewLedger(store)
	order, err := trade.NewOrder(uuid.New(), productID, nil, 2, decimal.Zero, false, "")
	require.NoError(t, err)

	_, err = ledger.OnQuantityChange(ctx, order, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, store.stock[productID])

	_, err = ledger.OnQuantityChange(ctx, order, -5)
	require.NoError(t, err)
	assert.Equal(t, 12, store.stock[productID])

	require.NoError(t, order.ChangeStatus(trade.OrderStatusCancelled, ""))
	event, err := ledger.OnQuantityChange(ctx, order, 4)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, 12, store.stock[productID])
}
