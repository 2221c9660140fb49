package partner

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

const maxContactValueLength = 500

// ErrCustomerNotFound is returned when a customer does not exist in the store
var ErrCustomerNotFound = shared.NewNotFoundError("CUSTOMER_NOT_FOUND", "Customer")

// ContactFields lists every channel stored on a customer
var ContactFields = []ContactField{ContactFieldName, ContactFieldEmail, ContactFieldPhone, ContactFieldAddress}

// Customer is the canonical record for a set of contact channels within a
// store. Primary fields hold the current values; the alternative sets keep
// every other variant that has been seen for the same person.
type Customer struct {
	shared.TenantAggregateRoot
	Name                 string
	Email                string
	Phone                string
	Address              string
	AlternativeNames     ContactSet
	AlternativeEmails    ContactSet
	AlternativePhones    ContactSet
	AlternativeAddresses ContactSet
}

// NewCustomer creates a customer whose primary fields come from contact
func NewCustomer(tenantID uuid.UUID, contact Contact) (*Customer, error) {
	contact = contact.Trimmed()
	if contact.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer requires at least one contact value")
	}
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	customer := &Customer{
		TenantAggregateRoot:  shared.NewTenantAggregateRoot(tenantID),
		Name:                 contact.Name,
		Email:                contact.Email,
		Phone:                contact.Phone,
		Address:              contact.Address,
		AlternativeNames:     ContactSet{},
		AlternativeEmails:    ContactSet{},
		AlternativePhones:    ContactSet{},
		AlternativeAddresses: ContactSet{},
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Primary returns the primary value of a field
func (c *Customer) Primary(f ContactField) string {
	switch f {
	case ContactFieldName:
		return c.Name
	case ContactFieldEmail:
		return c.Email
	case ContactFieldPhone:
		return c.Phone
	case ContactFieldAddress:
		return c.Address
	}
	return ""
}

func (c *Customer) setPrimary(f ContactField, value string) {
	switch f {
	case ContactFieldName:
		c.Name = value
	case ContactFieldEmail:
		c.Email = value
	case ContactFieldPhone:
		c.Phone = value
	case ContactFieldAddress:
		c.Address = value
	}
}

// Alternates returns the alternative value set of a field
func (c *Customer) Alternates(f ContactField) *ContactSet {
	switch f {
	case ContactFieldName:
		return &c.AlternativeNames
	case ContactFieldEmail:
		return &c.AlternativeEmails
	case ContactFieldPhone:
		return &c.AlternativePhones
	default:
		return &c.AlternativeAddresses
	}
}

// Matches reports whether the normalized key equals the primary value or
// one of the alternates of the field.
func (c *Customer) Matches(f ContactField, key string) bool {
	if key == "" {
		return false
	}
	if f.Normalize(c.Primary(f)) == key {
		return true
	}
	for _, k := range c.Alternates(f).Keys(f) {
		if k == key {
			return true
		}
	}
	return false
}

// IdentityKeys returns the distinct normalized values of a field across the
// primary and the alternates.
func (c *Customer) IdentityKeys(f ContactField) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0, len(*c.Alternates(f))+1)
	add := func(k string) {
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	add(f.Normalize(c.Primary(f)))
	for _, k := range c.Alternates(f).Keys(f) {
		add(k)
	}
	return keys
}

// absorbValue records a contact value without replacing a populated primary.
// An empty primary is filled; otherwise the value joins the alternates when
// its normalized form is new to the customer.
func (c *Customer) absorbValue(f ContactField, raw string) bool {
	raw = trimValue(raw)
	key := f.Normalize(raw)
	if key == "" {
		return false
	}
	primaryKey := f.Normalize(c.Primary(f))
	if primaryKey == key {
		return false
	}
	if primaryKey == "" {
		c.setPrimary(f, raw)
		return true
	}
	return c.Alternates(f).Add(f, raw)
}

// Absorb merges contact variants into the customer. Repeating the call with
// the same contact changes nothing. Returns the fields that changed.
func (c *Customer) Absorb(contact Contact) []ContactField {
	changed := make([]ContactField, 0, len(ContactFields))
	for _, f := range ContactFields {
		if c.absorbValue(f, contact.Value(f)) {
			changed = append(changed, f)
		}
	}
	if len(changed) > 0 {
		c.Touch()
		c.IncrementVersion()
		c.AddDomainEvent(NewCustomerContactMergedEvent(c, changed))
	}
	return changed
}

// UpdateContact sets primary fields from the non-blank values in contact.
// A replaced primary is kept as an alternate.
func (c *Customer) UpdateContact(contact Contact) error {
	contact = contact.Trimmed()
	if err := validateContact(contact); err != nil {
		return err
	}

	updated := false
	for _, f := range ContactFields {
		value := contact.Value(f)
		key := f.Normalize(value)
		if key == "" {
			continue
		}
		old := c.Primary(f)
		if f.Normalize(old) == key {
			if old != value {
				c.setPrimary(f, value)
				updated = true
			}
			continue
		}
		alts := c.Alternates(f)
		alts.Remove(f, value)
		alts.Add(f, old)
		c.setPrimary(f, value)
		updated = true
	}

	if updated {
		c.Touch()
		c.IncrementVersion()
		c.AddDomainEvent(NewCustomerUpdatedEvent(c))
	}
	return nil
}

// MergeFrom folds a losing customer into this one. Every primary and
// alternate value of the loser is absorbed; the loser is expected to be
// deleted by the caller in the same transaction.
func (c *Customer) MergeFrom(loser *Customer) error {
	if loser == nil || loser.ID == c.ID {
		return shared.NewDomainError("INVALID_INPUT", "Cannot merge a customer into itself")
	}
	if !loser.BelongsTo(c.TenantID) {
		return shared.NewDomainError("INVALID_INPUT", "Cannot merge customers from different stores")
	}

	for _, f := range ContactFields {
		c.absorbValue(f, loser.Primary(f))
		for _, v := range *loser.Alternates(f) {
			c.absorbValue(f, v)
		}
	}

	c.Touch()
	c.IncrementVersion()
	c.AddDomainEvent(NewCustomersMergedEvent(c, loser))
	return nil
}

func validateContact(contact Contact) error {
	for _, f := range ContactFields {
		if utf8.RuneCountInString(contact.Value(f)) > maxContactValueLength {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s cannot exceed %d characters", f, maxContactValueLength))
		}
	}
	return nil
}
