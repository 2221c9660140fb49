package models

import (
	"github.com/lib/pq"
	"github.com/storefront/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
//
// The *_keys columns hold the normalized identity keys of the primary value
// and every alternate. They are derived on save and are only used for
// lookups; GIN indexes make `key = ANY(column)` cheap.
type CustomerModel struct {
	TenantAggregateModel
	Name                 string         `gorm:"type:varchar(500);not null;default:''"`
	Email                string         `gorm:"type:varchar(500);not null;default:''"`
	Phone                string         `gorm:"type:varchar(500);not null;default:''"`
	Address              string         `gorm:"type:varchar(500);not null;default:''"`
	AlternativeNames     pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	AlternativeEmails    pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	AlternativePhones    pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	AlternativeAddresses pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	EmailKeys            pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	PhoneKeys            pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	AddressKeys          pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// IdentityKeyColumn returns the key column searched for an identity field
func IdentityKeyColumn(f partner.ContactField) string {
	switch f {
	case partner.ContactFieldEmail:
		return "email_keys"
	case partner.ContactFieldPhone:
		return "phone_keys"
	case partner.ContactFieldAddress:
		return "address_keys"
	default:
		return ""
	}
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantAggregateRoot:  m.ToDomainTenantAggregateRoot(),
		Name:                 m.Name,
		Email:                m.Email,
		Phone:                m.Phone,
		Address:              m.Address,
		AlternativeNames:     partner.ContactSet(m.AlternativeNames),
		AlternativeEmails:    partner.ContactSet(m.AlternativeEmails),
		AlternativePhones:    partner.ContactSet(m.AlternativePhones),
		AlternativeAddresses: partner.ContactSet(m.AlternativeAddresses),
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.AlternativeNames = stringArray(c.AlternativeNames)
	m.AlternativeEmails = stringArray(c.AlternativeEmails)
	m.AlternativePhones = stringArray(c.AlternativePhones)
	m.AlternativeAddresses = stringArray(c.AlternativeAddresses)
	m.EmailKeys = pq.StringArray(c.IdentityKeys(partner.ContactFieldEmail))
	m.PhoneKeys = pq.StringArray(c.IdentityKeys(partner.ContactFieldPhone))
	m.AddressKeys = pq.StringArray(c.IdentityKeys(partner.ContactFieldAddress))
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

func stringArray(s partner.ContactSet) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}
