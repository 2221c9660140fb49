package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/storefront/backend/internal/application/partner"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CustomerService is the customer use case the handler drives
type CustomerService interface {
	ResolveOrCreate(ctx context.Context, tenantID uuid.UUID, req partnerapp.ResolveCustomerRequest) (*partnerapp.CustomerResponse, error)
	Update(ctx context.Context, tenantID, customerID uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error)
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*partnerapp.CustomerResponse, error)
}

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customers CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Resolve finds the customer owning a contact or creates one.
// Answers 201 when a customer was created, 200 otherwise.
// POST /customers/resolve
func (h *CustomerHandler) Resolve(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	var req partnerapp.ResolveCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.customers.ResolveOrCreate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	status := http.StatusOK
	if customer.Created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewSuccessResponse(customer))
}

// GetByID returns one customer.
// GET /customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.PathID(c, "id", dto.ErrCodeCustomerNotFound)
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Update changes a customer's primary contact, merging on collision.
// PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	customerID, ok := h.PathID(c, "id", dto.ErrCodeCustomerNotFound)
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), tenantID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
