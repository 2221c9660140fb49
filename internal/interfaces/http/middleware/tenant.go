package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Tenant context keys
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// Tenant resolves the store a request belongs to. The token's tenant_id
// claim wins over the X-Tenant-ID header, so a caller cannot reach another
// store by changing the header. Paths in skipPaths need no store.
func Tenant(skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, skip := range skipPaths {
			if c.Request.URL.Path == skip {
				c.Next()
				return
			}
		}

		raw := c.GetString(JWTTenantIDKey)
		if raw == "" {
			raw = c.GetHeader(TenantHeaderKey)
		}
		if raw == "" {
			abortWithError(c, dto.ErrCodeInvalidTenant, "Store identification required")
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil {
			abortWithError(c, dto.ErrCodeInvalidTenant, "Invalid store ID format")
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID.String()))
		c.Next()
	}
}

// GetTenantID returns the store resolved by Tenant
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(TenantIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
