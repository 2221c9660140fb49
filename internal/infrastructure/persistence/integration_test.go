//go:build integration

package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	partnerapp "github.com/storefront/backend/internal/application/partner"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newIntegrationDB starts a PostgreSQL container and applies the embedded schema
func newIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

type integrationFixture struct {
	db        *gorm.DB
	orders    *tradeapp.OrderService
	returns   *tradeapp.ReturnService
	customers *partnerapp.CustomerService
	products  *GormProductRepository
	tenantID  uuid.UUID
}

func newIntegrationFixture(t *testing.T) *integrationFixture {
	db := newIntegrationDB(t)
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)
	txScope := NewGormTransactionScope(db, event.NewOutboxPublisher(serializer))
	engine := partnerapp.NewMergeEngine()

	return &integrationFixture{
		db:        db,
		orders:    tradeapp.NewOrderService(txScope, NewGormOrderRepository(db), engine),
		returns:   tradeapp.NewReturnService(txScope, NewGormReturnRepository(db)),
		customers: partnerapp.NewCustomerService(txScope, NewGormCustomerRepository(db), engine),
		products:  NewGormProductRepository(db),
		tenantID:  uuid.New(),
	}
}

func (f *integrationFixture) product(t *testing.T, stock int) *catalog.Product {
	p, err := catalog.NewProduct(f.tenantID, "Widget", "W-"+uuid.NewString()[:8], decimal.NewFromInt(10), stock)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func TestIntegration_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()
	p := f.product(t, 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.orders.CreateOrder(ctx, f.tenantID, tradeapp.CreateOrderRequest{ProductID: p.ID, Quantity: 1}, "tester")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, shared.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 7, rejected)
	stock, err := f.products.Available(ctx, f.tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestIntegration_ConcurrentReturnsRespectOrderQuantity(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()
	p := f.product(t, 10)

	order, err := f.orders.CreateOrder(ctx, f.tenantID, tradeapp.CreateOrderRequest{ProductID: p.ID, Quantity: 5}, "tester")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.returns.CreateReturn(ctx, f.tenantID, order.ID, tradeapp.CreateReturnRequest{Quantity: 2}, "tester")
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, accepted)
	list, err := f.returns.ListByOrder(ctx, f.tenantID, order.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestIntegration_ConcurrentResolveCreatesOneCustomer(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()

	ids := make(chan uuid.UUID, 10)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.customers.ResolveOrCreate(ctx, f.tenantID, partnerapp.ResolveCustomerRequest{
				ContactRequest: partnerapp.ContactRequest{Email: "Same@Example.com"},
			})
			if assert.NoError(t, err) {
				ids <- resp.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	distinct := map[uuid.UUID]struct{}{}
	for id := range ids {
		distinct[id] = struct{}{}
	}
	assert.Len(t, distinct, 1)

	var count int64
	require.NoError(t, f.db.Table("customers").Where("tenant_id = ?", f.tenantID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIntegration_StatusRoundTripRestoresStock(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()
	p := f.product(t, 10)

	order, err := f.orders.CreateOrder(ctx, f.tenantID, tradeapp.CreateOrderRequest{
		ProductID: p.ID,
		Quantity:  4,
		Contact:   partnerapp.ContactRequest{Email: "buyer@example.com"},
	}, "tester")
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(ctx, f.tenantID, order.ID, tradeapp.UpdateOrderStatusRequest{Status: "CANCELLED"}, "tester")
	require.NoError(t, err)
	stock, err := f.products.Available(ctx, f.tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)

	_, err = f.orders.UpdateOrderStatus(ctx, f.tenantID, order.ID, tradeapp.UpdateOrderStatusRequest{Status: "PENDING"}, "tester")
	require.NoError(t, err)
	stock, err = f.products.Available(ctx, f.tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stock)

	var pending int64
	require.NoError(t, f.db.Table("outbox_events").Where("tenant_id = ?", f.tenantID).Count(&pending).Error)
	assert.Greater(t, pending, int64(0))
}

func TestIntegration_CancelAfterApprovedReturnRestoresHeldUnits(t *testing.T) {
	f := newIntegrationFixture(t)
	ctx := context.Background()
	p := f.product(t, 5)

	order, err := f.orders.CreateOrder(ctx, f.tenantID, tradeapp.CreateOrderRequest{
		ProductID: p.ID,
		Quantity:  5,
		Contact:   partnerapp.ContactRequest{Email: "held@example.com"},
	}, "tester")
	require.NoError(t, err)
	ret, err := f.returns.CreateReturn(ctx, f.tenantID, order.ID, tradeapp.CreateReturnRequest{Quantity: 2}, "tester")
	require.NoError(t, err)
	_, err = f.returns.UpdateReturnStatus(ctx, f.tenantID, ret.ID, tradeapp.UpdateReturnStatusRequest{Status: "APPROVED"}, "tester")
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(ctx, f.tenantID, order.ID, tradeapp.UpdateOrderStatusRequest{Status: "CANCELLED"}, "tester")
	require.NoError(t, err)
	stock, err := f.products.Available(ctx, f.tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stock)

	again, err := f.orders.CreateOrder(ctx, f.tenantID, tradeapp.CreateOrderRequest{
		ProductID: p.ID,
		Quantity:  1,
		Contact:   partnerapp.ContactRequest{Email: "HELD@example.com"},
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, *order.CustomerID, *again.CustomerID)
}
