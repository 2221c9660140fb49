// Package scopetest provides an in-memory TransactionScope for service tests.
//
// Units of work are serialized by a single mutex and rolled back on error,
// which mirrors the atomicity of the database scope without row locking.
package scopetest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/scope"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// Store holds every aggregate of the storefront in memory
type Store struct {
	mu        sync.Mutex
	customers map[uuid.UUID]partner.Customer
	orders    map[uuid.UUID]trade.Order
	returns   map[uuid.UUID]trade.OrderReturn
	products  map[uuid.UUID]catalog.Product
	events    []shared.DomainEvent
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]partner.Customer),
		orders:    make(map[uuid.UUID]trade.Order),
		returns:   make(map[uuid.UUID]trade.OrderReturn),
		products:  make(map[uuid.UUID]catalog.Product),
	}
}

type snapshot struct {
	customers map[uuid.UUID]partner.Customer
	orders    map[uuid.UUID]trade.Order
	returns   map[uuid.UUID]trade.OrderReturn
	products  map[uuid.UUID]catalog.Product
	events    int
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Execute runs fn as one serialized unit of work
func (s *Store) Execute(_ context.Context, fn func(repos scope.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		customers: copyMap(s.customers),
		orders:    copyMap(s.orders),
		returns:   copyMap(s.returns),
		products:  copyMap(s.products),
		events:    len(s.events),
	}
	if err := fn(Repos{s: s}); err != nil {
		s.customers = snap.customers
		s.orders = snap.orders
		s.returns = snap.returns
		s.products = snap.products
		s.events = s.events[:snap.events]
		return err
	}
	return nil
}

// Repos returns repositories that read the store without taking the unit of
// work lock. Use them only when no Execute call is in flight.
func (s *Store) Repos() Repos {
	return Repos{s: s}
}

// Events returns the recorded domain events
func (s *Store) Events() []shared.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shared.DomainEvent(nil), s.events...)
}

// Stock returns the current stock of a product
func (s *Store) Stock(productID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[productID].Stock
}

// CustomerCount returns the number of customers of a store
func (s *Store) CustomerCount(tenantID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.customers {
		if c.BelongsTo(tenantID) {
			n++
		}
	}
	return n
}

// Repos implements scope.Repositories over a Store
type Repos struct {
	s *Store
}

func (r Repos) Customers() partner.CustomerRepository { return customerRepo(r) }
func (r Repos) Orders() trade.OrderRepository         { return orderRepo(r) }
func (r Repos) Returns() trade.ReturnRepository       { return returnRepo(r) }
func (r Repos) Products() catalog.ProductRepository   { return productRepo(r) }
func (r Repos) Stock() inventory.StockStore           { return productRepo(r) }
func (r Repos) Events() shared.EventRecorder          { return eventRecorder(r) }

type customerRepo Repos

func loadCustomer(c partner.Customer) *partner.Customer {
	c.AlternativeNames = append(partner.ContactSet{}, c.AlternativeNames...)
	c.AlternativeEmails = append(partner.ContactSet{}, c.AlternativeEmails...)
	c.AlternativePhones = append(partner.ContactSet{}, c.AlternativePhones...)
	c.AlternativeAddresses = append(partner.ContactSet{}, c.AlternativeAddresses...)
	c.ClearDomainEvents()
	return &c
}

func (r customerRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok || !c.BelongsTo(tenantID) {
		return nil, partner.ErrCustomerNotFound
	}
	return loadCustomer(c), nil
}

func (r customerRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r customerRepo) FindByIdentityKey(_ context.Context, tenantID uuid.UUID, field partner.ContactField, key string) ([]*partner.Customer, error) {
	var found []*partner.Customer
	for _, c := range r.s.customers {
		if c.BelongsTo(tenantID) && c.Matches(field, key) {
			found = append(found, loadCustomer(c))
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if !found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].CreatedAt.Before(found[j].CreatedAt)
		}
		return found[i].ID.String() < found[j].ID.String()
	})
	return found, nil
}

func (r customerRepo) LockIdentityKeys(context.Context, uuid.UUID, []string) error {
	return nil
}

func (r customerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.s.customers[customer.ID] = *loadCustomer(*customer)
	return nil
}

func (r customerRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	c, ok := r.s.customers[id]
	if !ok || !c.BelongsTo(tenantID) {
		return partner.ErrCustomerNotFound
	}
	delete(r.s.customers, id)
	return nil
}

type orderRepo Repos

func loadOrder(o trade.Order) *trade.Order {
	o.Timeline = append([]trade.TimelineEntry{}, o.Timeline...)
	o.ClearDomainEvents()
	return &o
}

func (r orderRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	o, ok := r.s.orders[id]
	if !ok || !o.BelongsTo(tenantID) {
		return nil, trade.ErrOrderNotFound
	}
	return loadOrder(o), nil
}

func (r orderRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r orderRepo) Save(_ context.Context, order *trade.Order) error {
	r.s.orders[order.ID] = *loadOrder(*order)
	return nil
}

func (r orderRepo) ReassignCustomer(_ context.Context, tenantID, from, to uuid.UUID) (int64, error) {
	var n int64
	for id, o := range r.s.orders {
		if o.BelongsTo(tenantID) && o.CustomerID != nil && *o.CustomerID == from {
			target := to
			o.CustomerID = &target
			r.s.orders[id] = o
			n++
		}
	}
	return n, nil
}

type returnRepo Repos

func loadReturn(ret trade.OrderReturn) *trade.OrderReturn {
	ret.History = append([]trade.ReturnHistoryEntry{}, ret.History...)
	ret.ClearDomainEvents()
	return &ret
}

func (r returnRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.OrderReturn, error) {
	ret, ok := r.s.returns[id]
	if !ok || !ret.BelongsTo(tenantID) {
		return nil, trade.ErrReturnNotFound
	}
	return loadReturn(ret), nil
}

func (r returnRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.OrderReturn, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r returnRepo) FindByOrder(_ context.Context, tenantID, orderID uuid.UUID) ([]*trade.OrderReturn, error) {
	var found []*trade.OrderReturn
	for _, ret := range r.s.returns {
		if ret.BelongsTo(tenantID) && ret.OrderID == orderID {
			found = append(found, loadReturn(ret))
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	return found, nil
}

func (r returnRepo) Save(_ context.Context, ret *trade.OrderReturn) error {
	r.s.returns[ret.ID] = *loadReturn(*ret)
	return nil
}

func (r returnRepo) ReassignCustomer(_ context.Context, tenantID, from, to uuid.UUID) (int64, error) {
	var n int64
	for id, ret := range r.s.returns {
		if ret.BelongsTo(tenantID) && ret.CustomerID != nil && *ret.CustomerID == from {
			target := to
			ret.CustomerID = &target
			r.s.returns[id] = ret
			n++
		}
	}
	return n, nil
}

type productRepo Repos

func (r productRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.s.products[id]
	if !ok || !p.BelongsTo(tenantID) {
		return nil, catalog.ErrProductNotFound
	}
	p.ClearDomainEvents()
	return &p, nil
}

func (r productRepo) Save(_ context.Context, product *catalog.Product) error {
	p := *product
	p.ClearDomainEvents()
	r.s.products[p.ID] = p
	return nil
}

func (r productRepo) DecrementIfAvailable(_ context.Context, tenantID, productID uuid.UUID, quantity int) (bool, error) {
	p, ok := r.s.products[productID]
	if !ok || !p.BelongsTo(tenantID) || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	r.s.products[productID] = p
	return true, nil
}

func (r productRepo) Increment(_ context.Context, tenantID, productID uuid.UUID, quantity int) error {
	p, ok := r.s.products[productID]
	if !ok || !p.BelongsTo(tenantID) {
		return catalog.ErrProductNotFound
	}
	p.Stock += quantity
	r.s.products[productID] = p
	return nil
}

func (r productRepo) Available(_ context.Context, tenantID, productID uuid.UUID) (int, error) {
	p, ok := r.s.products[productID]
	if !ok || !p.BelongsTo(tenantID) {
		return 0, catalog.ErrProductNotFound
	}
	return p.Stock, nil
}

func (r productRepo) Lock(_ context.Context, tenantID, productID uuid.UUID) error {
	p, ok := r.s.products[productID]
	if !ok || !p.BelongsTo(tenantID) {
		return catalog.ErrProductNotFound
	}
	return nil
}

type eventRecorder Repos

func (r eventRecorder) Record(_ context.Context, events ...shared.DomainEvent) error {
	r.s.events = append(r.s.events, events...)
	return nil
}

var _ scope.TransactionScope = (*Store)(nil)
var _ scope.Repositories = Repos{}
