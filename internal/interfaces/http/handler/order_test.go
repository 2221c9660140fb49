package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, tenantID uuid.UUID, req tradeapp.CreateOrderRequest, actor string) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, req tradeapp.UpdateOrderStatusRequest, actor string) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, tenantID, orderID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) EditOrderQuantity(ctx context.Context, tenantID, orderID uuid.UUID, req tradeapp.EditOrderQuantityRequest, actor string) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, tenantID, orderID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tradeapp.OrderResponse), args.Error(1)
}

func setupOrderRouter(svc OrderService, tenantID uuid.UUID) *gin.Engine {
	h := NewOrderHandler(svc)
	router := gin.New()
	router.Use(withTenant(tenantID, "alice"))
	router.POST("/orders", h.Create)
	router.GET("/orders/:id", h.GetByID)
	router.PATCH("/orders/:id/status", h.UpdateStatus)
	router.PATCH("/orders/:id/quantity", h.EditQuantity)
	return router
}

func TestOrderHandler_Create(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		req := tradeapp.CreateOrderRequest{ProductID: productID, Quantity: 2}
		req.Contact.Email = "bob@example.com"
		order := &tradeapp.OrderResponse{
			ID:        uuid.New(),
			TenantID:  tenantID,
			ProductID: productID,
			Quantity:  2,
			Total:     decimal.NewFromInt(20),
			Status:    "PENDING",
		}
		svc.On("CreateOrder", mock.Anything, tenantID, req, "alice").Return(order, nil)

		w := doRequest(t, router, http.MethodPost, "/orders", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, order.ID.String(), data["id"])
		assert.Equal(t, "PENDING", data["status"])
		svc.AssertExpectations(t)
	})

	t.Run("zero quantity", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)

		w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
			"product_id": productID,
			"quantity":   0,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidQuantity, decodeResponse(t, w).Error.Code)
		svc.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)

		w := doRequest(t, router, http.MethodPost, "/orders", "{not json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		svc.On("CreateOrder", mock.Anything, tenantID, mock.Anything, "alice").
			Return(nil, shared.NewInsufficientStockError(9, 3))

		w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
			"product_id": productID,
			"quantity":   9,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
		assert.EqualValues(t, 3, resp.Error.Details["available"])
	})

	t.Run("identity conflict", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		svc.On("CreateOrder", mock.Anything, tenantID, mock.Anything, "alice").
			Return(nil, shared.ErrIdentityConflict)

		w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
			"product_id": productID,
			"quantity":   1,
			"contact":    map[string]any{"email": "a@x.com", "phone": "555"},
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeIdentityConflict, decodeResponse(t, w).Error.Code)
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	tenantID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		orderID := uuid.New()
		svc.On("GetByID", mock.Anything, tenantID, orderID).
			Return(&tradeapp.OrderResponse{ID: orderID, Status: "ACCEPTED"}, nil)

		w := doRequest(t, router, http.MethodGet, "/orders/"+orderID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ACCEPTED", decodeResponse(t, w).Data.(map[string]any)["status"])
	})

	t.Run("other tenant's order is not found", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		orderID := uuid.New()
		svc.On("GetByID", mock.Anything, tenantID, orderID).
			Return(nil, shared.NewNotFoundError("ORDER_NOT_FOUND", "Order"))

		w := doRequest(t, router, http.MethodGet, "/orders/"+orderID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeOrderNotFound, decodeResponse(t, w).Error.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)

		w := doRequest(t, router, http.MethodGet, "/orders/123", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertNotCalled(t, "GetByID")
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	t.Run("accepted", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		req := tradeapp.UpdateOrderStatusRequest{Status: "SHIPPED"}
		svc.On("UpdateOrderStatus", mock.Anything, tenantID, orderID, req, "alice").
			Return(&tradeapp.OrderResponse{ID: orderID, Status: "SHIPPED"}, nil)

		w := doRequest(t, router, http.MethodPatch, "/orders/"+orderID.String()+"/status", req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)

		w := doRequest(t, router, http.MethodPatch, "/orders/"+orderID.String()+"/status",
			map[string]any{"status": "LOST"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidStatus, decodeResponse(t, w).Error.Code)
		svc.AssertNotCalled(t, "UpdateOrderStatus")
	})

	t.Run("stale version", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		svc.On("UpdateOrderStatus", mock.Anything, tenantID, orderID, mock.Anything, "alice").
			Return(nil, shared.ErrConcurrencyConflict)

		w := doRequest(t, router, http.MethodPatch, "/orders/"+orderID.String()+"/status",
			map[string]any{"status": "CANCELLED"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConcurrencyConflict, decodeResponse(t, w).Error.Code)
	})
}

func TestOrderHandler_EditQuantity(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	t.Run("edited", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		req := tradeapp.EditOrderQuantityRequest{Quantity: 4}
		svc.On("EditOrderQuantity", mock.Anything, tenantID, orderID, req, "alice").
			Return(&tradeapp.OrderResponse{ID: orderID, Quantity: 4}, nil)

		w := doRequest(t, router, http.MethodPatch, "/orders/"+orderID.String()+"/quantity", req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 4, decodeResponse(t, w).Data.(map[string]any)["quantity"])
	})

	t.Run("void order", func(t *testing.T) {
		svc := new(MockOrderService)
		router := setupOrderRouter(svc, tenantID)
		svc.On("EditOrderQuantity", mock.Anything, tenantID, orderID, mock.Anything, "alice").
			Return(nil, shared.ErrInvalidState)

		w := doRequest(t, router, http.MethodPatch, "/orders/"+orderID.String()+"/quantity",
			map[string]any{"quantity": 2})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decodeResponse(t, w).Error.Code)
	})
}
