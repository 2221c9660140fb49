// Package router assembles the storefront HTTP engine: the middleware chain
// and the versioned API routes.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// HealthPath is served outside the API group and needs no tenant
const HealthPath = "/health"

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Orders    *handler.OrderHandler
	Returns   *handler.ReturnHandler
	Customers *handler.CustomerHandler
	Products  *handler.ProductHandler
	Health    *handler.HealthHandler
}

// Options configures the middleware chain. Zero values disable the
// optional pieces.
type Options struct {
	Logger      *zap.Logger
	ServiceName string
	APIVersion  string

	TracingEnabled bool
	Meter          metric.Meter

	CORS           middleware.CORSConfig
	MaxBodySize    int64
	RequestTimeout time.Duration
	RateLimiter    *middleware.RateLimiter

	JWTService   *auth.JWTService
	AuthRequired bool

	IdempotencyStore shared.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// New builds the gin engine with the full middleware chain and all routes
func New(opts Options, h Handlers) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIVersion == "" {
		opts.APIVersion = "v1"
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(opts.Logger),
		logger.GinMiddleware(opts.Logger),
		middleware.Tracing(opts.ServiceName, opts.TracingEnabled),
	)
	if opts.Meter != nil {
		metrics, err := middleware.HTTPMetrics(opts.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
		}
		engine.Use(metrics)
	}
	engine.Use(
		middleware.CORS(opts.CORS),
		middleware.Secure(),
		middleware.BodyLimit(opts.MaxBodySize),
	)
	if opts.RateLimiter != nil {
		engine.Use(middleware.RateLimit(opts.RateLimiter))
	}
	if opts.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(opts.RequestTimeout))
	}
	engine.Use(
		middleware.Auth(middleware.AuthConfig{
			JWTService: opts.JWTService,
			Required:   opts.AuthRequired,
			SkipPaths:  []string{HealthPath},
			Logger:     opts.Logger,
		}),
		middleware.Tenant(HealthPath),
		middleware.SpanEnricher(),
	)
	if opts.IdempotencyStore != nil {
		engine.Use(middleware.Idempotency(opts.IdempotencyStore, opts.IdempotencyTTL, opts.Logger))
	}

	if h.Health != nil {
		engine.GET(HealthPath, h.Health.Check)
	}
	NewRouter(engine, WithAPIVersion(opts.APIVersion)).
		Register(orderRoutes(h.Orders, h.Returns)).
		Register(returnRoutes(h.Returns)).
		Register(customerRoutes(h.Customers)).
		Register(productRoutes(h.Products)).
		Setup()

	return engine, nil
}

func orderRoutes(orders *handler.OrderHandler, returns *handler.ReturnHandler) RouteRegistrar {
	g := NewDomainGroup("orders", "/orders")
	if orders != nil {
		g.POST("", orders.Create).
			GET("/:id", orders.GetByID).
			PATCH("/:id/status", orders.UpdateStatus).
			PATCH("/:id/quantity", orders.EditQuantity)
	}
	if returns != nil {
		g.POST("/:id/returns", returns.Create).
			GET("/:id/returns", returns.ListByOrder)
	}
	return g
}

func returnRoutes(returns *handler.ReturnHandler) RouteRegistrar {
	g := NewDomainGroup("returns", "/returns")
	if returns != nil {
		g.GET("/:id", returns.GetByID).
			PATCH("/:id/status", returns.UpdateStatus)
	}
	return g
}

func customerRoutes(customers *handler.CustomerHandler) RouteRegistrar {
	g := NewDomainGroup("customers", "/customers")
	if customers != nil {
		g.POST("/resolve", customers.Resolve).
			GET("/:id", customers.GetByID).
			PUT("/:id", customers.Update)
	}
	return g
}

func productRoutes(products *handler.ProductHandler) RouteRegistrar {
	g := NewDomainGroup("products", "/products")
	if products != nil {
		g.POST("", products.Create).
			GET("/:id", products.GetByID)
	}
	return g
}

// RouteRegistrar registers routes on an API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one resource under a common prefix
type DomainGroup struct {
	name   string
	prefix string
	routes []routeDefinition
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new resource route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, path, handlers)
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	if len(dg.routes) == 0 {
		return
	}
	group := rg.Group(dg.prefix)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
