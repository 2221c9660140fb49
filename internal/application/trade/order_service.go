package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	apppartner "github.com/storefront/backend/internal/application/partner"
	"github.com/storefront/backend/internal/application/scope"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderService handles order placement and lifecycle operations
type OrderService struct {
	scope   scope.TransactionScope
	orders  trade.OrderRepository
	engine  *apppartner.MergeEngine
	metrics Metrics
}

// NewOrderService creates a new OrderService
func NewOrderService(txScope scope.TransactionScope, orders trade.OrderRepository, engine *apppartner.MergeEngine) *OrderService {
	return &OrderService{
		scope:   txScope,
		orders:  orders,
		engine:  engine,
		metrics: noopMetrics{},
	}
}

// SetMetrics sets the business metrics sink
func (s *OrderService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

func recordStockEvent(ctx context.Context, repos scope.Repositories, event *inventory.StockMovedEvent) error {
	if event == nil {
		return nil
	}
	return repos.Events().Record(ctx, event)
}

// lockOrder locks the order's product row and then the order row. Every
// writer takes the product lock before any order, customer or return lock.
func lockOrder(ctx context.Context, repos scope.Repositories, tenantID, orderID uuid.UUID) (*trade.Order, error) {
	current, err := repos.Orders().FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := repos.Stock().Lock(ctx, tenantID, current.ProductID); err != nil {
		return nil, err
	}
	return repos.Orders().FindByIDForUpdate(ctx, tenantID, orderID)
}

// CreateOrder reserves stock, attaches the contact to a customer and stores
// the order, all in one transaction. A contact with no email, phone or
// address leaves the order without a customer.
func (s *OrderService) CreateOrder(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest, actor string) (*OrderResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos scope.Repositories) error {
		product, err := repos.Products().FindByIDForTenant(ctx, tenantID, req.ProductID)
		if err != nil {
			return err
		}

		stockEvent, err := inventory.NewLedger(repos.Stock()).Reserve(ctx, tenantID, product.ID, req.Quantity)
		if err != nil {
			return err
		}

		var customerID *uuid.UUID
		contact := req.Contact.ToContact()
		if contact.Trimmed().HasIdentity() {
			customer, _, err := s.engine.ResolveOrCreate(ctx, repos, tenantID, contact)
			if err != nil {
				return err
			}
			customerID = &customer.ID
		}

		order, err = trade.NewOrder(tenantID, product.ID, customerID, req.Quantity, product.UnitPrice, req.IsPaid, actor)
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		if err := recordStockEvent(ctx, repos, stockEvent); err != nil {
			return err
		}
		return scope.RecordEvents(ctx, repos, order)
	})
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			s.metrics.RecordStockRejected(ctx, tenantID)
		}
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx, tenantID, order.Total)
	s.metrics.RecordStockMovement(ctx, tenantID, string(inventory.StockDirectionReserved), order.Quantity)

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateOrderStatus moves an order to a new status. Crossing between the
// active and void partitions restores or re-reserves the units the order
// holds; when re-reservation fails the order keeps its current status.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderStatusRequest, actor string) (*OrderResponse, error) {
	newStatus := trade.OrderStatus(req.Status)
	if !newStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", req.Status))
	}

	var (
		order      *trade.Order
		stockEvent *inventory.StockMovedEvent
	)
	err := s.scope.Execute(ctx, func(repos scope.Repositories) error {
		var err error
		order, err = lockOrder(ctx, repos, tenantID, orderID)
		if err != nil {
			return err
		}

		oldStatus := order.Status
		if oldStatus == newStatus {
			return nil
		}
		returns, err := repos.Returns().FindByOrder(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		stockEvent, err = inventory.NewLedger(repos.Stock()).OnStatusChange(ctx, order, returns, oldStatus, newStatus)
		if err != nil {
			return err
		}
		if err := order.ChangeStatus(newStatus, actor); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		if err := recordStockEvent(ctx, repos, stockEvent); err != nil {
			return err
		}
		return scope.RecordEvents(ctx, repos, order)
	})
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			s.metrics.RecordStockRejected(ctx, tenantID)
		}
		return nil, err
	}

	if stockEvent != nil {
		s.metrics.RecordStockMovement(ctx, tenantID, string(stockEvent.Direction), stockEvent.Quantity)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// EditOrderQuantity changes the quantity of an order, moving the difference
// in or out of stock while the order is active
func (s *OrderService) EditOrderQuantity(ctx context.Context, tenantID, orderID uuid.UUID, req EditOrderQuantityRequest, actor string) (*OrderResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos scope.Repositories) error {
		var err error
		order, err = lockOrder(ctx, repos, tenantID, orderID)
		if err != nil {
			return err
		}
		returns, err := repos.Returns().FindByOrder(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		delta, err := order.ChangeQuantity(req.Quantity, trade.ReturnedQuantity(returns), actor)
		if err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		stockEvent, err := inventory.NewLedger(repos.Stock()).OnQuantityChange(ctx, order, delta)
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		if err := recordStockEvent(ctx, repos, stockEvent); err != nil {
			return err
		}
		return scope.RecordEvents(ctx, repos, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}
