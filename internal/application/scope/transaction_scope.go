package scope

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work atomically. When fn returns an error
// every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to every store used by the storefront core.
// All of them share the transaction of the scope that produced them.
type Repositories interface {
	Customers() partner.CustomerRepository
	Orders() trade.OrderRepository
	Returns() trade.ReturnRepository
	Products() catalog.ProductRepository
	Stock() inventory.StockStore
	Events() shared.EventRecorder
}

// RecordEvents writes the pending events of each aggregate to the outbox
// and clears them
func RecordEvents(ctx context.Context, repos Repositories, aggregates ...shared.AggregateRoot) error {
	var events []shared.DomainEvent
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		events = append(events, agg.GetDomainEvents()...)
		agg.ClearDomainEvents()
	}
	if len(events) == 0 {
		return nil
	}
	return repos.Events().Record(ctx, events...)
}

// NoOpTransactionScope runs the function directly against the given
// repositories. It is used in tests and where no transaction is needed.
type NoOpTransactionScope struct {
	customers partner.CustomerRepository
	orders    trade.OrderRepository
	returns   trade.ReturnRepository
	products  catalog.ProductRepository
	stock     inventory.StockStore
	events    shared.EventRecorder
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	customers partner.CustomerRepository,
	orders trade.OrderRepository,
	returns trade.ReturnRepository,
	products catalog.ProductRepository,
	stock inventory.StockStore,
	events shared.EventRecorder,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		customers: customers,
		orders:    orders,
		returns:   returns,
		products:  products,
		stock:     stock,
		events:    events,
	}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.customers }
func (s *NoOpTransactionScope) Orders() trade.OrderRepository         { return s.orders }
func (s *NoOpTransactionScope) Returns() trade.ReturnRepository       { return s.returns }
func (s *NoOpTransactionScope) Products() catalog.ProductRepository   { return s.products }
func (s *NoOpTransactionScope) Stock() inventory.StockStore           { return s.stock }
func (s *NoOpTransactionScope) Events() shared.EventRecorder          { return s.events }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ Repositories = (*NoOpTransactionScope)(nil)
