package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderReturn(t *testing.T) {
	t.Run("respects remaining quantity", func(t *testing.T) {
		order := newTestOrder(t, 10)
		approved, err := NewOrderReturn(order, nil, 6, "damaged", "u1")
		require.NoError(t, err)
		_, err = approved.UpdateStatus(ReturnStatusApproved, "", "u1")
		require.NoError(t, err)
		existing := []*OrderReturn{approved}

		_, err = NewOrderReturn(order, existing, 5, "too many", "u1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds remaining order quantity (4 available)")
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)

		ret, err := NewOrderReturn(order, existing, 4, "rest", "u1")
		require.NoError(t, err)
		assert.Equal(t, ReturnStatusSubmitted, ret.Status)
		assert.Equal(t, order.ID, ret.OrderID)
		assert.Equal(t, order.CustomerID, ret.CustomerID)
		require.Len(t, ret.History, 1)
		assert.Equal(t, ReturnStatusSubmitted, ret.History[0].Status)
	})

	t.Run("rejected returns do not count", func(t *testing.T) {
		order := newTestOrder(t, 2)
		rejected, err := NewOrderReturn(order, nil, 2, "", "u1")
		require.NoError(t, err)
		_, err = rejected.UpdateStatus(ReturnStatusRejected, "no", "u1")
		require.NoError(t, err)

		_, err = NewOrderReturn(order, []*OrderReturn{rejected}, 2, "", "u1")
		assert.NoError(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := newTestOrder(t, 2)
		_, err := NewOrderReturn(order, nil, 0, "", "u1")
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("rejects void order", func(t *testing.T) {
		order := newTestOrder(t, 2)
		require.NoError(t, order.ChangeStatus(OrderStatusCancelled, "u1"))
		_, err := NewOrderReturn(order, nil, 1, "", "u1")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("computes pro-rata refund", func(t *testing.T) {
		order := newTestOrder(t, 4)
		ret, err := NewOrderReturn(order, nil, 1, "", "u1")
		require.NoError(t, err)
		assert.True(t, ret.RefundAmount.Equal(decimal.NewFromInt(10)))
	})
}

func TestOrderReturn_UpdateStatus(t *testing.T) {
	t.Run("restocks only on first approval", func(t *testing.T) {
		ret, err := NewOrderReturn(newTestOrder(t, 3), nil, 2, "", "u1")
		require.NoError(t, err)

		restock, err := ret.UpdateStatus(ReturnStatusApproved, "ok", "u2")
		require.NoError(t, err)
		assert.True(t, restock)
		assert.True(t, ret.Restocked)

		restock, err = ret.UpdateStatus(ReturnStatusApproved, "again", "u2")
		require.NoError(t, err)
		assert.False(t, restock)

		restock, err = ret.UpdateStatus(ReturnStatusRefunded, "", "u2")
		require.NoError(t, err)
		assert.False(t, restock)
		restock, err = ret.UpdateStatus(ReturnStatusApproved, "", "u2")
		require.NoError(t, err)
		assert.False(t, restock)

		assert.Len(t, ret.History, 5)
		assert.Equal(t, ReturnStatusApproved, ret.History[0].Status)
		assert.Equal(t, "again", ret.History[2].Note)
	})

	t.Run("note without status change", func(t *testing.T) {
		ret, err := NewOrderReturn(newTestOrder(t, 3), nil, 1, "", "u1")
		require.NoError(t, err)
		ret.ClearDomainEvents()

		restock, err := ret.UpdateStatus(ReturnStatusSubmitted, "called customer", "u2")

		require.NoError(t, err)
		assert.False(t, restock)
		assert.Equal(t, "called customer", ret.History[0].Note)
		assert.Empty(t, ret.GetDomainEvents())
	})

	t.Run("restocked return cannot be rejected", func(t *testing.T) {
		ret, err := NewOrderReturn(newTestOrder(t, 3), nil, 1, "", "u1")
		require.NoError(t, err)
		_, err = ret.UpdateStatus(ReturnStatusApproved, "", "u1")
		require.NoError(t, err)

		_, err = ret.UpdateStatus(ReturnStatusRejected, "", "u1")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, ReturnStatusApproved, ret.Status)
	})

	t.Run("reactivation is detected", func(t *testing.T) {
		ret, err := NewOrderReturn(newTestOrder(t, 3), nil, 1, "", "u1")
		require.NoError(t, err)
		_, err = ret.UpdateStatus(ReturnStatusRejected, "", "u1")
		require.NoError(t, err)

		assert.True(t, ret.Reactivates(ReturnStatusApproved))
		assert.False(t, ret.Reactivates(ReturnStatusRejected))
	})
}
