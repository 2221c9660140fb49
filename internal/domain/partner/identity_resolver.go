package partner

import (
	"context"

	"github.com/google/uuid"
)

// IdentityResolver matches incoming contacts to existing customers.
//
// Channels are tried in priority order: email, then phone, then address.
// The first channel with a hit decides, so an email match always outranks
// a phone or address match on a different customer. Within a channel the
// earliest created customer wins.
type IdentityResolver struct {
	customers CustomerReader
}

// NewIdentityResolver creates a resolver over the given reader
func NewIdentityResolver(customers CustomerReader) *IdentityResolver {
	return &IdentityResolver{customers: customers}
}

// FindCustomer returns the customer the contact belongs to, or nil when no
// customer matches.
func (r *IdentityResolver) FindCustomer(ctx context.Context, tenantID uuid.UUID, contact Contact) (*Customer, error) {
	for _, f := range IdentityFields {
		key := contact.IdentityKey(f)
		if key == "" {
			continue
		}
		matches, err := r.customers.FindByIdentityKey(ctx, tenantID, f, key)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return earliest(matches), nil
		}
	}
	return nil, nil
}

// FindCollisions returns the distinct customers, other than exclude, that
// already own one of the contact's identity keys.
func (r *IdentityResolver) FindCollisions(ctx context.Context, tenantID uuid.UUID, contact Contact, exclude uuid.UUID) ([]*Customer, error) {
	seen := make(map[uuid.UUID]struct{})
	var collisions []*Customer
	for _, f := range IdentityFields {
		key := contact.IdentityKey(f)
		if key == "" {
			continue
		}
		matches, err := r.customers.FindByIdentityKey(ctx, tenantID, f, key)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if m.ID == exclude {
				continue
			}
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			collisions = append(collisions, m)
		}
	}
	return collisions, nil
}

func earliest(customers []*Customer) *Customer {
	best := customers[0]
	for _, c := range customers[1:] {
		if c.CreatedAt.Before(best.CreatedAt) ||
			(c.CreatedAt.Equal(best.CreatedAt) && c.ID.String() < best.ID.String()) {
			best = c
		}
	}
	return best
}
