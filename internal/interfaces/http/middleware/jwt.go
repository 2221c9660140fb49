package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTTenantIDKey = "jwt_tenant_id"
	ActorKey       = "actor"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// Required rejects requests without a bearer token. When false such
	// requests run as the system actor.
	Required bool
	// SkipPaths are paths that never need a token
	SkipPaths []string
	Logger    *zap.Logger
}

// Auth validates the bearer token and records the acting user.
// A token that is present but invalid is always rejected.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		for _, skip := range cfg.SkipPaths {
			if c.Request.URL.Path == skip {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			if cfg.Required {
				abortWithError(c, dto.ErrCodeUnauthorized, "Authentication required")
				return
			}
			setActor(c, trade.ActorSystem)
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || token == "" || cfg.JWTService == nil {
			abortWithError(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			log.Warn("JWT authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortWithError(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTTenantIDKey, claims.TenantID)
		setActor(c, claims.UserID)
		c.Next()
	}
}

func setActor(c *gin.Context, actor string) {
	c.Set(ActorKey, actor)
	c.Request = c.Request.WithContext(logger.WithActor(c.Request.Context(), actor))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetActor returns who is acting on this request. It falls back to the
// system actor when the auth middleware did not run.
func GetActor(c *gin.Context) string {
	if actor := c.GetString(ActorKey); actor != "" {
		return actor
	}
	return trade.ActorSystem
}
