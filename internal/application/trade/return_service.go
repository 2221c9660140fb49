package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/scope"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// ReturnService handles order returns. Every operation locks the parent
// order row before touching its returns, so return checks for one order
// never interleave.
type ReturnService struct {
	scope   scope.TransactionScope
	returns trade.ReturnRepository
	metrics Metrics
}

// NewReturnService creates a new ReturnService
func NewReturnService(txScope scope.TransactionScope, returns trade.ReturnRepository) *ReturnService {
	return &ReturnService{
		scope:   txScope,
		returns: returns,
		metrics: noopMetrics{},
	}
}

// SetMetrics sets the business metrics sink
func (s *ReturnService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// CreateReturn submits a return for part of an order. The requested
// quantity may not exceed what remains after earlier non-rejected returns.
func (s *ReturnService) CreateReturn(ctx context.Context, tenantID, orderID uuid.UUID, req CreateReturnRequest, actor string) (*ReturnResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var ret *trade.OrderReturn
	err := s.scope.Execute(ctx, func(repos scope.Repositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		existing, err := repos.Returns().FindByOrder(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		ret, err = trade.NewOrderReturn(order, existing, req.Quantity, req.Reason, actor)
		if err != nil {
			return err
		}
		order.RecordReturn(ret, actor)

		if err := repos.Returns().Save(ctx, ret); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		return scope.RecordEvents(ctx, repos, ret, order)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReturnCreated(ctx, tenantID, ret.ReturnedQuantity)

	response := ToReturnResponse(ret)
	return &response, nil
}

// UpdateReturnStatus records a status change or note on a return. Entering
// APPROVED for the first time puts the returned units back into stock,
// unless the order is void and no longer holds them.
func (s *ReturnService) UpdateReturnStatus(ctx context.Context, tenantID, returnID uuid.UUID, req UpdateReturnStatusRequest, actor string) (*ReturnResponse, error) {
	newStatus := trade.ReturnStatus(req.Status)
	if !newStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown return status %q", req.Status))
	}

	var (
		ret        *trade.OrderReturn
		stockEvent *inventory.StockMovedEvent
	)
	err := s.scope.Execute(ctx, func(repos scope.Repositories) error {
		current, err := repos.Returns().FindByIDForTenant(ctx, tenantID, returnID)
		if err != nil {
			return err
		}
		order, err := lockOrder(ctx, repos, tenantID, current.OrderID)
		if err != nil {
			return err
		}
		ret, err = repos.Returns().FindByIDForUpdate(ctx, tenantID, returnID)
		if err != nil {
			return err
		}

		if ret.Reactivates(newStatus) {
			if err := checkReactivation(ctx, repos, order, ret); err != nil {
				return err
			}
		}

		restock, err := ret.UpdateStatus(newStatus, req.Note, actor)
		if err != nil {
			return err
		}
		// A void order gave all of its held units back already.
		if restock && order.Status.IsActive() {
			stockEvent, err = inventory.NewLedger(repos.Stock()).Restore(ctx, tenantID, order.ProductID, ret.ReturnedQuantity)
			if err != nil {
				return err
			}
			if err := repos.Events().Record(ctx, stockEvent); err != nil {
				return err
			}
		}

		if err := repos.Returns().Save(ctx, ret); err != nil {
			return err
		}
		return scope.RecordEvents(ctx, repos, ret)
	})
	if err != nil {
		return nil, err
	}

	if stockEvent != nil {
		s.metrics.RecordStockMovement(ctx, tenantID, string(stockEvent.Direction), stockEvent.Quantity)
	}

	response := ToReturnResponse(ret)
	return &response, nil
}

// checkReactivation makes sure a rejected return fits in the order again
// before it starts counting against the order's quantity
func checkReactivation(ctx context.Context, repos scope.Repositories, order *trade.Order, ret *trade.OrderReturn) error {
	all, err := repos.Returns().FindByOrder(ctx, order.TenantID, order.ID)
	if err != nil {
		return err
	}
	others := make([]*trade.OrderReturn, 0, len(all))
	for _, r := range all {
		if r.ID != ret.ID {
			others = append(others, r)
		}
	}
	remaining := trade.RemainingQuantity(order, others)
	if ret.ReturnedQuantity > remaining {
		return shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("return quantity %d exceeds remaining order quantity (%d available)", ret.ReturnedQuantity, remaining)).
			WithDetail("available", remaining)
	}
	return nil
}

// GetByID retrieves a return by ID
func (s *ReturnService) GetByID(ctx context.Context, tenantID, returnID uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returns.FindByIDForTenant(ctx, tenantID, returnID)
	if err != nil {
		return nil, err
	}

	response := ToReturnResponse(ret)
	return &response, nil
}

// ListByOrder lists the returns of an order, newest first
func (s *ReturnService) ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]ReturnResponse, error) {
	returns, err := s.returns.FindByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return ToReturnResponses(returns), nil
}
