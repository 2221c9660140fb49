package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ReturnService is the return use case the handler drives
type ReturnService interface {
	CreateReturn(ctx context.Context, tenantID, orderID uuid.UUID, req tradeapp.CreateReturnRequest, actor string) (*tradeapp.ReturnResponse, error)
	UpdateReturnStatus(ctx context.Context, tenantID, returnID uuid.UUID, req tradeapp.UpdateReturnStatusRequest, actor string) (*tradeapp.ReturnResponse, error)
	GetByID(ctx context.Context, tenantID, returnID uuid.UUID) (*tradeapp.ReturnResponse, error)
	ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]tradeapp.ReturnResponse, error)
}

// ReturnHandler handles order return endpoints
type ReturnHandler struct {
	BaseHandler
	returns ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returns ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

// Create opens a return against an order.
// POST /orders/:id/returns
func (h *ReturnHandler) Create(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.PathID(c, "id", dto.ErrCodeOrderNotFound)
	if !ok {
		return
	}
	var req tradeapp.CreateReturnRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ret, err := h.returns.CreateReturn(c.Request.Context(), tenantID, orderID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// ListByOrder lists the returns of an order.
// GET /orders/:id/returns
func (h *ReturnHandler) ListByOrder(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.PathID(c, "id", dto.ErrCodeOrderNotFound)
	if !ok {
		return
	}

	returns, err := h.returns.ListByOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}

// GetByID returns one return.
// GET /returns/:id
func (h *ReturnHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	returnID, ok := h.PathID(c, "id", dto.ErrCodeReturnNotFound)
	if !ok {
		return
	}

	ret, err := h.returns.GetByID(c.Request.Context(), tenantID, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// UpdateStatus moves a return to a new status.
// PATCH /returns/:id/status
func (h *ReturnHandler) UpdateStatus(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	returnID, ok := h.PathID(c, "id", dto.ErrCodeReturnNotFound)
	if !ok {
		return
	}
	var req tradeapp.UpdateReturnStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ret, err := h.returns.UpdateReturnStatus(c.Request.Context(), tenantID, returnID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}
