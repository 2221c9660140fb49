package partner

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/scope"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
)

// MergeEngine attaches contacts to customers. It must run inside a
// transaction; every method takes the transaction's repositories.
type MergeEngine struct{}

// NewMergeEngine creates a MergeEngine
func NewMergeEngine() *MergeEngine {
	return &MergeEngine{}
}

// identityLockKeys returns the advisory lock keys for the contact's
// identity channels
func identityLockKeys(contact partner.Contact) []string {
	keys := make([]string, 0, len(partner.IdentityFields))
	for _, f := range partner.IdentityFields {
		if k := contact.IdentityKey(f); k != "" {
			keys = append(keys, string(f)+":"+k)
		}
	}
	return keys
}

var errNoIdentity = shared.NewDomainError("INVALID_INPUT", "An email, phone or address is required to identify a customer")

// ResolveOrCreate returns the customer the contact belongs to, absorbing any
// new contact variants, or creates a new customer when nothing matches.
// The boolean reports whether a customer was created. A contact without an
// email, phone or address cannot be resolved and is rejected.
func (e *MergeEngine) ResolveOrCreate(ctx context.Context, repos scope.Repositories, tenantID uuid.UUID, contact partner.Contact) (*partner.Customer, bool, error) {
	contact = contact.Trimmed()
	if !contact.HasIdentity() {
		return nil, false, errNoIdentity
	}
	customers := repos.Customers()

	if err := customers.LockIdentityKeys(ctx, tenantID, identityLockKeys(contact)); err != nil {
		return nil, false, err
	}

	match, err := partner.NewIdentityResolver(customers).FindCustomer(ctx, tenantID, contact)
	if err != nil {
		return nil, false, err
	}

	if match == nil {
		customer, err := partner.NewCustomer(tenantID, contact)
		if err != nil {
			return nil, false, err
		}
		if err := customers.Save(ctx, customer); err != nil {
			return nil, false, err
		}
		if err := scope.RecordEvents(ctx, repos, customer); err != nil {
			return nil, false, err
		}
		return customer, true, nil
	}

	customer, err := customers.FindByIDForUpdate(ctx, tenantID, match.ID)
	if err != nil {
		return nil, false, err
	}
	if changed := customer.Absorb(contact); len(changed) > 0 {
		if err := customers.Save(ctx, customer); err != nil {
			return nil, false, err
		}
		if err := scope.RecordEvents(ctx, repos, customer); err != nil {
			return nil, false, err
		}
	}
	return customer, false, nil
}

// UpdateCustomer sets the primary contact fields of a customer. When a new
// value already identifies a different customer, the updated customer is
// folded into that one: its orders and returns are moved over, the
// surviving record keeps both sets of contact data plus the update, and the
// updated record is deleted. The surviving customer is returned.
func (e *MergeEngine) UpdateCustomer(ctx context.Context, repos scope.Repositories, tenantID, customerID uuid.UUID, contact partner.Contact) (*partner.Customer, error) {
	contact = contact.Trimmed()
	customers := repos.Customers()

	if err := customers.LockIdentityKeys(ctx, tenantID, identityLockKeys(contact)); err != nil {
		return nil, err
	}

	collisions, err := partner.NewIdentityResolver(customers).FindCollisions(ctx, tenantID, contact, customerID)
	if err != nil {
		return nil, err
	}

	switch len(collisions) {
	case 0:
		customer, err := customers.FindByIDForUpdate(ctx, tenantID, customerID)
		if err != nil {
			return nil, err
		}
		if err := customer.UpdateContact(contact); err != nil {
			return nil, err
		}
		if err := customers.Save(ctx, customer); err != nil {
			return nil, err
		}
		if err := scope.RecordEvents(ctx, repos, customer); err != nil {
			return nil, err
		}
		return customer, nil
	case 1:
		return e.mergeInto(ctx, repos, tenantID, collisions[0].ID, customerID, contact)
	default:
		ids := make([]string, 0, len(collisions))
		for _, c := range collisions {
			ids = append(ids, c.ID.String())
		}
		return nil, shared.ErrIdentityConflict.WithDetail("customer_ids", ids)
	}
}

func (e *MergeEngine) mergeInto(ctx context.Context, repos scope.Repositories, tenantID, winnerID, loserID uuid.UUID, contact partner.Contact) (*partner.Customer, error) {
	customers := repos.Customers()

	// lock in id order
	ids := []uuid.UUID{winnerID, loserID}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	locked := make(map[uuid.UUID]*partner.Customer, 2)
	for _, id := range ids {
		c, err := customers.FindByIDForUpdate(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		locked[id] = c
	}
	winner, loser := locked[winnerID], locked[loserID]

	if err := winner.MergeFrom(loser); err != nil {
		return nil, err
	}
	winner.Absorb(contact)

	if _, err := repos.Orders().ReassignCustomer(ctx, tenantID, loser.ID, winner.ID); err != nil {
		return nil, err
	}
	if _, err := repos.Returns().ReassignCustomer(ctx, tenantID, loser.ID, winner.ID); err != nil {
		return nil, err
	}
	if err := customers.Save(ctx, winner); err != nil {
		return nil, err
	}
	if err := customers.DeleteForTenant(ctx, tenantID, loser.ID); err != nil {
		return nil, err
	}
	if err := scope.RecordEvents(ctx, repos, winner); err != nil {
		return nil, err
	}
	return winner, nil
}
