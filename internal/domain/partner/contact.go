package partner

import "strings"

// ContactField identifies one channel of contact data on a customer
type ContactField string

const (
	ContactFieldName    ContactField = "name"
	ContactFieldEmail   ContactField = "email"
	ContactFieldPhone   ContactField = "phone"
	ContactFieldAddress ContactField = "address"
)

// IdentityFields are the channels used to resolve a contact to a customer,
// in priority order.
var IdentityFields = []ContactField{ContactFieldEmail, ContactFieldPhone, ContactFieldAddress}

// Normalize applies the field's normalization rule
func (f ContactField) Normalize(value string) string {
	switch f {
	case ContactFieldEmail:
		return NormalizeEmail(value)
	case ContactFieldPhone:
		return NormalizePhone(value)
	case ContactFieldAddress:
		return NormalizeAddress(value)
	default:
		return NormalizeName(value)
	}
}

// Contact is the set of contact values supplied with an order or a
// customer request. All fields are optional.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Trimmed returns the contact with surrounding whitespace removed
func (c Contact) Trimmed() Contact {
	return Contact{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

// Value returns the raw value for a field
func (c Contact) Value(f ContactField) string {
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

// IdentityKey returns the normalized lookup key for a field, empty when the
// contact has nothing usable for it.
func (c Contact) IdentityKey(f ContactField) string {
	return f.Normalize(c.Value(f))
}

// HasIdentity reports whether any identity channel is present
func (c Contact) HasIdentity() bool {
	for _, f := range IdentityFields {
		if c.IdentityKey(f) != "" {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the contact carries no data at all
func (c Contact) IsEmpty() bool {
	return !c.HasIdentity() && NormalizeName(c.Name) == ""
}

// ContactSet is an ordered set of raw contact values. Insertion order is
// preserved and no two entries share a normalized form.
type ContactSet []string

// Contains reports whether a value with the same normalized form exists
func (s ContactSet) Contains(f ContactField, value string) bool {
	key := f.Normalize(value)
	if key == "" {
		return false
	}
	for _, v := range s {
		if f.Normalize(v) == key {
			return true
		}
	}
	return false
}

// Add appends the trimmed value unless it is blank or already present.
// Returns true if the set changed.
func (s *ContactSet) Add(f ContactField, value string) bool {
	value = strings.TrimSpace(value)
	if f.Normalize(value) == "" || s.Contains(f, value) {
		return false
	}
	*s = append(*s, value)
	return true
}

// Keys returns the distinct normalized forms of the set's values
func (s ContactSet) Keys(f ContactField) []string {
	keys := make([]string, 0, len(s))
	for _, v := range s {
		if k := f.Normalize(v); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Remove deletes every value sharing the normalized form of value
func (s *ContactSet) Remove(f ContactField, value string) {
	key := f.Normalize(value)
	if key == "" {
		return
	}
	kept := (*s)[:0]
	for _, v := range *s {
		if f.Normalize(v) != key {
			kept = append(kept, v)
		}
	}
	*s = kept
}

func trimValue(v string) string {
	return strings.TrimSpace(v)
}
