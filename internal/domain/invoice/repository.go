package invoice

import (
	"context"

	"github.com/recurbill/recurbill/internal/types"
)

// Repository defines the interface for invoice data access
type Repository interface {
	// CreateWithLineItems persists an invoice and its line items atomically
	CreateWithLineItems(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
	Update(ctx context.Context, invoice *Invoice) error
}
