package customer

import (
	"github.com/recurbill/recurbill/internal/types"
)

// Customer represents the customer domain model
type Customer struct {
	ID         string `db:"id" json:"id"`
	ExternalID string `db:"external_id" json:"external_id"`
	Name       string `db:"name" json:"name"`
	Email      string `db:"email" json:"email"`
	// Currency is the ISO code invoices for this customer are denominated
	// in; empty means the system default
	Currency string `db:"currency" json:"currency"`
	// PaymentTerms is the number of days between an invoice's date and its
	// due date; zero means the system default
	PaymentTerms int            `db:"payment_terms" json:"payment_terms"`
	Metadata     types.Metadata `db:"metadata" json:"metadata,omitempty"`
	types.BaseModel
}

// GetCurrency returns the customer's currency, falling back to the
// system default
func (c *Customer) GetCurrency() string {
	if c.Currency == "" {
		return types.DefaultCurrency
	}
	return c.Currency
}

// GetPaymentTerms returns the customer's payment terms in days, falling
// back to the system default
func (c *Customer) GetPaymentTerms() int {
	if c.PaymentTerms <= 0 {
		return types.DefaultPaymentTermsDays
	}
	return c.PaymentTerms
}
