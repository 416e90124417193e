package dto

import (
	"context"

	"github.com/recurbill/recurbill/internal/domain/customer"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/recurbill/recurbill/internal/validator"
)

type CreateCustomerRequest struct {
	ExternalID   string            `json:"external_id"`
	Name         string            `json:"name" validate:"required,max=255"`
	Email        string            `json:"email" validate:"omitempty,email"`
	Currency     string            `json:"currency" validate:"omitempty,len=3"`
	PaymentTerms int               `json:"payment_terms" validate:"omitempty,min=0,max=365"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type UpdateCustomerRequest struct {
	ExternalID   *string           `json:"external_id"`
	Name         *string           `json:"name" validate:"omitempty,max=255"`
	Email        *string           `json:"email" validate:"omitempty,email"`
	Currency     *string           `json:"currency" validate:"omitempty,len=3"`
	PaymentTerms *int              `json:"payment_terms" validate:"omitempty,min=0,max=365"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		ExternalID:   r.ExternalID,
		Name:         r.Name,
		Email:        r.Email,
		Currency:     r.Currency,
		PaymentTerms: r.PaymentTerms,
		Metadata:     r.Metadata,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the requested changes onto the customer
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	if r.ExternalID != nil {
		c.ExternalID = *r.ExternalID
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Currency != nil {
		c.Currency = *r.Currency
	}
	if r.PaymentTerms != nil {
		c.PaymentTerms = *r.PaymentTerms
	}
	if r.Metadata != nil {
		c.Metadata = r.Metadata
	}
}
