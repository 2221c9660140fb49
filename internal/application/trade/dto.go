package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apppartner "github.com/storefront/backend/internal/application/partner"
	"github.com/storefront/backend/internal/domain/trade"
)

// CreateOrderRequest places an order for one product
type CreateOrderRequest struct {
	ProductID uuid.UUID                 `json:"product_id" binding:"required"`
	Quantity  int                       `json:"quantity" binding:"required,min=1"`
	IsPaid    bool                      `json:"is_paid"`
	Contact   apppartner.ContactRequest `json:"contact"`
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

// EditOrderQuantityRequest changes the quantity of an order
type EditOrderQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CreateReturnRequest asks to send back units of an order
type CreateReturnRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"max=1000"`
}

// UpdateReturnStatusRequest moves a return to a new status, or just adds a note
type UpdateReturnStatusRequest struct {
	Status string `json:"status" binding:"required,return_status"`
	Note   string `json:"note" binding:"max=1000"`
}

// TimelineEntryResponse is one order timeline entry
type TimelineEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Actor       string    `json:"actor"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID         uuid.UUID               `json:"id"`
	TenantID   uuid.UUID               `json:"tenant_id"`
	CustomerID *uuid.UUID              `json:"customer_id"`
	ProductID  uuid.UUID               `json:"product_id"`
	Quantity   int                     `json:"quantity"`
	UnitPrice  decimal.Decimal         `json:"unit_price"`
	Total      decimal.Decimal         `json:"total"`
	Status     string                  `json:"status"`
	IsPaid     bool                    `json:"is_paid"`
	Timeline   []TimelineEntryResponse `json:"timeline"`
	Version    int                     `json:"version"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	timeline := make([]TimelineEntryResponse, 0, len(o.Timeline))
	for _, e := range o.Timeline {
		timeline = append(timeline, TimelineEntryResponse(e))
	}
	return OrderResponse{
		ID:         o.ID,
		TenantID:   o.TenantID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		UnitPrice:  o.UnitPrice,
		Total:      o.Total,
		Status:     string(o.Status),
		IsPaid:     o.IsPaid,
		Timeline:   timeline,
		Version:    o.Version,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// ReturnHistoryEntryResponse is one return history entry
type ReturnHistoryEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Actor     string    `json:"actor"`
	Note      string    `json:"note,omitempty"`
}

// ReturnResponse represents an order return in API responses
type ReturnResponse struct {
	ID               uuid.UUID                    `json:"id"`
	TenantID         uuid.UUID                    `json:"tenant_id"`
	OrderID          uuid.UUID                    `json:"order_id"`
	CustomerID       *uuid.UUID                   `json:"customer_id"`
	ReturnedQuantity int                          `json:"returned_quantity"`
	Reason           string                       `json:"reason"`
	Status           string                       `json:"status"`
	RefundAmount     decimal.Decimal              `json:"refund_amount"`
	Restocked        bool                         `json:"restocked"`
	History          []ReturnHistoryEntryResponse `json:"history"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// ToReturnResponse converts a domain OrderReturn to ReturnResponse
func ToReturnResponse(r *trade.OrderReturn) ReturnResponse {
	history := make([]ReturnHistoryEntryResponse, 0, len(r.History))
	for _, h := range r.History {
		history = append(history, ReturnHistoryEntryResponse{
			ID:        h.ID,
			Timestamp: h.Timestamp,
			Status:    string(h.Status),
			Actor:     h.Actor,
			Note:      h.Note,
		})
	}
	return ReturnResponse{
		ID:               r.ID,
		TenantID:         r.TenantID,
		OrderID:          r.OrderID,
		CustomerID:       r.CustomerID,
		ReturnedQuantity: r.ReturnedQuantity,
		Reason:           r.Reason,
		Status:           string(r.Status),
		RefundAmount:     r.RefundAmount,
		Restocked:        r.Restocked,
		History:          history,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ToReturnResponses converts a list of returns
func ToReturnResponses(returns []*trade.OrderReturn) []ReturnResponse {
	out := make([]ReturnResponse, 0, len(returns))
	for _, r := range returns {
		out = append(out, ToReturnResponse(r))
	}
	return out
}
