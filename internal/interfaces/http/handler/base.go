package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string, details map[string]any) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message).WithDetails(details))
}

// HandleError converts an error into the standard error envelope. Domain
// errors keep their code and details; anything else is logged and
// reported as INTERNAL_ERROR without leaking its text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if code != dto.ErrCodeInternal {
			h.ErrorWithCode(c, code, domainErr.Message, domainErr.Details)
			return
		}
	}

	logger.L(c.Request.Context()).Error("Request failed", zap.Error(err))
	h.ErrorWithCode(c, dto.ErrCodeInternal, "An unexpected error occurred", nil)
}

// BindJSON binds the request body, answering 400 on failure
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		code, message, details := middleware.ValidationFailure(err)
		h.ErrorWithCode(c, code, message, details)
		return false
	}
	return true
}

// TenantID returns the store of the request, answering 400 when the tenant
// middleware did not resolve one
func (h *BaseHandler) TenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		h.ErrorWithCode(c, dto.ErrCodeInvalidTenant, "Store identification required", nil)
		return uuid.Nil, false
	}
	return tenantID, true
}

// PathID parses a UUID path parameter. A malformed ID cannot name an
// existing resource, so it answers with notFoundCode.
func (h *BaseHandler) PathID(c *gin.Context, param, notFoundCode string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.ErrorWithCode(c, notFoundCode, "Resource not found", nil)
		return uuid.Nil, false
	}
	return id, true
}
