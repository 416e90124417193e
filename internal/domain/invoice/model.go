package invoice

import (
	"time"

	"github.com/recurbill/recurbill/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	InvoiceNumber string              `db:"invoice_number" json:"invoice_number"`
	CustomerID    string              `db:"customer_id" json:"customer_id"`
	ScheduleID    *string             `db:"schedule_id" json:"schedule_id,omitempty"`
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	Currency      string              `db:"currency" json:"currency"`
	InvoiceDate   time.Time           `db:"invoice_date" json:"invoice_date"`
	DueDate       time.Time           `db:"due_date" json:"due_date"`
	Subtotal      decimal.Decimal     `db:"subtotal" json:"subtotal"`
	TaxTotal      decimal.Decimal     `db:"tax_total" json:"tax_total"`
	Total         decimal.Decimal     `db:"total" json:"total"`
	Description   string              `db:"description" json:"description,omitempty"`
	VoidedAt      *time.Time          `db:"voided_at" json:"voided_at,omitempty"`
	Metadata      types.Metadata      `db:"metadata" json:"metadata,omitempty"`
	LineItems     []*LineItem         `db:"-" json:"line_items,omitempty"`
	types.BaseModel
}

// Recalculate recomputes the invoice totals from its line items
func (i *Invoice) Recalculate() {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, item := range i.LineItems {
		subtotal = subtotal.Add(item.Subtotal())
		taxTotal = taxTotal.Add(item.Tax())
	}
	i.Subtotal = subtotal
	i.TaxTotal = taxTotal
	i.Total = subtotal.Add(taxTotal)
}

// CanVoid reports whether the invoice can still be voided
func (i *Invoice) CanVoid() bool {
	return i.InvoiceStatus != types.InvoiceStatusVoided
}
