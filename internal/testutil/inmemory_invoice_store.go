package testutil

import (
	"context"

	"github.com/recurbill/recurbill/internal/domain/invoice"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	copied := &invoice.Invoice{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		InvoiceStatus: inv.InvoiceStatus,
		Currency:      inv.Currency,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		TaxTotal:      inv.TaxTotal,
		Total:         inv.Total,
		Description:   inv.Description,
		Metadata:      lo.Assign(types.Metadata{}, inv.Metadata),
		BaseModel: types.BaseModel{
			TenantID:  inv.TenantID,
			Status:    inv.Status,
			CreatedAt: inv.CreatedAt,
			UpdatedAt: inv.UpdatedAt,
			CreatedBy: inv.CreatedBy,
			UpdatedBy: inv.UpdatedBy,
		},
	}
	if inv.ScheduleID != nil {
		id := *inv.ScheduleID
		copied.ScheduleID = &id
	}
	if inv.VoidedAt != nil {
		t := *inv.VoidedAt
		copied.VoidedAt = &t
	}
	for _, item := range inv.LineItems {
		li := *item
		copied.LineItems = append(copied.LineItems, &li)
	}
	return copied
}

func invoiceNotFound(id string) error {
	return ierr.NewError("invoice not found").
		WithHintf("Invoice with ID %s was not found", id).
		WithReportableDetails(map[string]any{
			"invoice_id": id,
		}).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			WithHint("Invoice cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, invoiceNotFound(id)
	}
	return copyInvoice(inv), nil
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	f, ok := filter.(*types.InvoiceFilter)
	if !ok {
		return true
	}
	if inv.TenantID != types.GetTenantID(ctx) {
		return false
	}
	if inv.Status != f.GetStatus() {
		return false
	}
	if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
		return false
	}
	if f.ScheduleID != "" && (inv.ScheduleID == nil || *inv.ScheduleID != f.ScheduleID) {
		return false
	}
	if f.InvoiceStatus != nil && inv.InvoiceStatus != *f.InvoiceStatus {
		return false
	}
	return true
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	invoices, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}
	invoices = paginate(invoices, filter.GetOffset(), filter.GetLimit())
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			WithHint("Invoice cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return invoiceNotFound(inv.ID)
	}
	return nil
}
