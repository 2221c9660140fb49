package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/partner"
)

// ContactRequest carries the contact channels of a customer request
type ContactRequest struct {
	Name    string `json:"name" binding:"max=500"`
	Email   string `json:"email" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=500"`
	Address string `json:"address" binding:"max=500"`
}

// ToContact converts the request into a domain contact
func (r ContactRequest) ToContact() partner.Contact {
	return partner.Contact{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

// ResolveCustomerRequest asks for the customer owning a contact
type ResolveCustomerRequest struct {
	ContactRequest
}

// UpdateCustomerRequest sets primary contact fields; blank fields are kept
type UpdateCustomerRequest struct {
	ContactRequest
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                   uuid.UUID `json:"id"`
	TenantID             uuid.UUID `json:"tenant_id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Address              string    `json:"address"`
	AlternativeNames     []string  `json:"alternative_names"`
	AlternativeEmails    []string  `json:"alternative_emails"`
	AlternativePhones    []string  `json:"alternative_phones"`
	AlternativeAddresses []string  `json:"alternative_addresses"`
	Created              bool      `json:"created,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                   c.ID,
		TenantID:             c.TenantID,
		Name:                 c.Name,
		Email:                c.Email,
		Phone:                c.Phone,
		Address:              c.Address,
		AlternativeNames:     nonNil(c.AlternativeNames),
		AlternativeEmails:    nonNil(c.AlternativeEmails),
		AlternativePhones:    nonNil(c.AlternativePhones),
		AlternativeAddresses: nonNil(c.AlternativeAddresses),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func nonNil(s partner.ContactSet) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
