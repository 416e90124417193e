package dto

import (
	"context"
	"time"

	"github.com/recurbill/recurbill/internal/domain/invoice"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/recurbill/recurbill/internal/validator"
	"github.com/shopspring/decimal"
)

// InvoiceDraft is an unsaved invoice payload, either assembled from a
// schedule by a billing run or submitted directly
type InvoiceDraft struct {
	CustomerID  string             `json:"customer_id" validate:"required"`
	ScheduleID  *string            `json:"schedule_id,omitempty"`
	Currency    string             `json:"currency" validate:"required,len=3"`
	InvoiceDate time.Time          `json:"invoice_date" validate:"required"`
	DueDate     time.Time          `json:"due_date" validate:"required"`
	Description string             `json:"description" validate:"omitempty,max=255"`
	Items       []InvoiceDraftItem `json:"items" validate:"required,min=1,dive"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
}

// InvoiceDraftItem is one line of an invoice draft
type InvoiceDraftItem struct {
	Description string          `json:"description" validate:"required,max=255"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

type InvoiceResponse struct {
	*invoice.Invoice
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

func (d *InvoiceDraft) Validate() error {
	if err := validator.ValidateRequest(d); err != nil {
		return err
	}
	if !d.DueDate.Before(d.InvoiceDate) {
		return nil
	}
	return ierr.NewError("due date before invoice date").
		WithHint("Due date cannot be earlier than the invoice date").
		Mark(ierr.ErrValidation)
}

// ToInvoice materializes the draft into a persistable invoice with
// computed line amounts and totals
func (d *InvoiceDraft) ToInvoice(ctx context.Context) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE_NUMBER),
		CustomerID:    d.CustomerID,
		ScheduleID:    d.ScheduleID,
		InvoiceStatus: types.InvoiceStatusIssued,
		Currency:      d.Currency,
		InvoiceDate:   d.InvoiceDate.UTC(),
		DueDate:       d.DueDate.UTC(),
		Description:   d.Description,
		Metadata:      d.Metadata,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	inv.LineItems = make([]*invoice.LineItem, 0, len(d.Items))
	for _, item := range d.Items {
		line := &invoice.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   inv.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
		}
		line.ComputeAmount()
		inv.LineItems = append(inv.LineItems, line)
	}
	inv.Recalculate()

	return inv
}
