package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// Ledger ties product stock to the order lifecycle. Orders in an active
// status hold their quantity out of stock; void orders do not.
type Ledger struct {
	stock StockStore
}

// NewLedger creates a ledger over a stock store
func NewLedger(stock StockStore) *Ledger {
	return &Ledger{stock: stock}
}

// Reserve takes quantity units out of stock or fails with an insufficient
// stock error carrying the available amount. Stock is untouched on failure.
func (l *Ledger) Reserve(ctx context.Context, tenantID, productID uuid.UUID, quantity int) (*StockMovedEvent, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	ok, err := l.stock.DecrementIfAvailable(ctx, tenantID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		available, err := l.stock.Available(ctx, tenantID, productID)
		if err != nil {
			return nil, err
		}
		return nil, shared.NewInsufficientStockError(quantity, available)
	}
	return NewStockMovedEvent(tenantID, productID, StockDirectionReserved, quantity), nil
}

// Restore puts quantity units back into stock
func (l *Ledger) Restore(ctx context.Context, tenantID, productID uuid.UUID, quantity int) (*StockMovedEvent, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if err := l.stock.Increment(ctx, tenantID, productID, quantity); err != nil {
		return nil, err
	}
	return NewStockMovedEvent(tenantID, productID, StockDirectionRestored, quantity), nil
}

// OnStatusChange applies the stock consequence of moving order from
// oldStatus to newStatus. Only crossings between the active and void
// partitions move stock, and only the units the order holds: returns that
// were already restocked are not counted twice. returns must hold every
// return of the order. The returned event is nil when nothing moves.
func (l *Ledger) OnStatusChange(ctx context.Context, order *trade.Order, returns []*trade.OrderReturn, oldStatus, newStatus trade.OrderStatus) (*StockMovedEvent, error) {
	held := trade.HeldQuantity(order, returns)
	if held == 0 {
		return nil, nil
	}
	switch {
	case oldStatus.IsActive() && newStatus.IsVoid():
		return l.Restore(ctx, order.TenantID, order.ProductID, held)
	case oldStatus.IsVoid() && newStatus.IsActive():
		return l.Reserve(ctx, order.TenantID, order.ProductID, held)
	default:
		return nil, nil
	}
}

// OnQuantityChange reserves or restores the difference of an edited active
// order. Void orders hold no stock and are left alone.
func (l *Ledger) OnQuantityChange(ctx context.Context, order *trade.Order, delta int) (*StockMovedEvent, error) {
	if delta == 0 || !order.Status.IsActive() {
		return nil, nil
	}
	if delta > 0 {
		return l.Reserve(ctx, order.TenantID, order.ProductID, delta)
	}
	return l.Restore(ctx, order.TenantID, order.ProductID, -delta)
}
