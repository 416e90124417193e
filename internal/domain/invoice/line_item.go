package invoice

import (
	"github.com/shopspring/decimal"
)

// LineItem is one billable line on an invoice
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	InvoiceID   string          `db:"invoice_id" json:"invoice_id"`
	Description string          `db:"description" json:"description"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	// TaxRate is a percentage between 0 and 100
	TaxRate decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	// Amount is the line total including tax, persisted so that historical
	// invoices survive rate changes
	Amount decimal.Decimal `db:"amount" json:"amount"`
}

// Subtotal returns quantity times unit price, before tax
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Tax returns the tax portion of the line
func (li *LineItem) Tax() decimal.Decimal {
	return li.Subtotal().Mul(li.TaxRate).Div(decimal.NewFromInt(100))
}

// ComputeAmount sets Amount from the line's quantity, price and tax rate
func (li *LineItem) ComputeAmount() {
	li.Amount = li.Subtotal().Add(li.Tax())
}
