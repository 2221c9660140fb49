package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/scope"
	"github.com/storefront/backend/internal/domain/partner"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	scope     scope.TransactionScope
	customers partner.CustomerReader
	engine    *MergeEngine
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(txScope scope.TransactionScope, customers partner.CustomerReader, engine *MergeEngine) *CustomerService {
	return &CustomerService{
		scope:     txScope,
		customers: customers,
		engine:    engine,
	}
}

// ResolveOrCreate returns the customer owning the contact, creating one
// when no customer of the store matches
func (s *CustomerService) ResolveOrCreate(ctx context.Context, tenantID uuid.UUID, req ResolveCustomerRequest) (*CustomerResponse, error) {
	contact := req.ToContact()
	if !contact.Trimmed().HasIdentity() {
		return nil, errNoIdentity
	}

	var response CustomerResponse
	err := s.scope.Execute(ctx, func(repos scope.Repositories) error {
		customer, created, err := s.engine.ResolveOrCreate(ctx, repos, tenantID, contact)
		if err != nil {
			return err
		}
		response = ToCustomerResponse(customer)
		response.Created = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Update changes a customer's primary contact fields, merging it into an
// existing customer when the new values already belong to one
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	var response CustomerResponse
	err := s.scope.Execute(ctx, func(repos scope.Repositories) error {
		customer, err := s.engine.UpdateCustomer(ctx, repos, tenantID, customerID, req.ToContact())
		if err != nil {
			return err
		}
		response = ToCustomerResponse(customer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}
