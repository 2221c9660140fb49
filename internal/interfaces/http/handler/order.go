package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderService is the order use case the handler drives
type OrderService interface {
	CreateOrder(ctx context.Context, tenantID uuid.UUID, req tradeapp.CreateOrderRequest, actor string) (*tradeapp.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, req tradeapp.UpdateOrderStatusRequest, actor string) (*tradeapp.OrderResponse, error)
	EditOrderQuantity(ctx context.Context, tenantID, orderID uuid.UUID, req tradeapp.EditOrderQuantityRequest, actor string) (*tradeapp.OrderResponse, error)
	GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.OrderResponse, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places an order.
// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	var req tradeapp.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), tenantID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID returns one order.
// GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.PathID(c, "id", dto.ErrCodeOrderNotFound)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus moves an order to a new status.
// PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.PathID(c, "id", dto.ErrCodeOrderNotFound)
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), tenantID, orderID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// EditQuantity changes the quantity of an order.
// PATCH /orders/:id/quantity
func (h *OrderHandler) EditQuantity(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.PathID(c, "id", dto.ErrCodeOrderNotFound)
	if !ok {
		return
	}
	var req tradeapp.EditOrderQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orders.EditOrderQuantity(c.Request.Context(), tenantID, orderID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
