package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/recurbill/recurbill/internal/domain/invoice"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/logger"
	"github.com/recurbill/recurbill/internal/postgres"
	"github.com/recurbill/recurbill/internal/types"
)

type invoiceRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

const invoiceColumns = `
	id, invoice_number, customer_id, schedule_id, invoice_status, currency,
	invoice_date, due_date, subtotal, tax_total, total, description,
	voided_at, metadata,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

const insertInvoiceQuery = `
	INSERT INTO invoices (` + invoiceColumns + `)
	VALUES (
		:id, :invoice_number, :customer_id, :schedule_id, :invoice_status, :currency,
		:invoice_date, :due_date, :subtotal, :tax_total, :total, :description,
		:voided_at, :metadata,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

const insertLineItemQuery = `
	INSERT INTO invoice_line_items (
		id, invoice_id, description, quantity, unit_price, tax_rate, amount
	) VALUES (
		:id, :invoice_id, :description, :quantity, :unit_price, :tax_rate, :amount
	)`

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	q := r.db.GetQuerier(ctx)
	if _, err := q.NamedExecContext(ctx, insertInvoiceQuery, inv); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	for _, item := range inv.LineItems {
		if _, err := q.NamedExecContext(ctx, insertLineItemQuery, item); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice line item").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1 AND tenant_id = $2 AND status = $3`

	var inv invoice.Invoice
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &inv, query, id, types.GetTenantID(ctx), types.StatusPublished)
	if err == sql.ErrNoRows {
		return nil, ierr.WithError(invoice.ErrInvoiceNotFound).
			WithHintf("Invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}

	items := make([]*invoice.LineItem, 0)
	lineQuery := `
		SELECT id, invoice_id, description, quantity, unit_price, tax_rate, amount
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY id`
	if err := q.SelectContext(ctx, &items, lineQuery, id); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice line items").
			Mark(ierr.ErrDatabase)
	}
	inv.LineItems = items

	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	invoices := make([]*invoice.Invoice, 0)
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) buildListQuery(ctx context.Context, filter *types.InvoiceFilter, count bool) (string, []interface{}) {
	cols := invoiceColumns
	if count {
		cols = "COUNT(*)"
	}

	query := `SELECT ` + cols + ` FROM invoices WHERE tenant_id = $1 AND status = $2`
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.ScheduleID != "" {
		args = append(args, filter.ScheduleID)
		query += fmt.Sprintf(" AND schedule_id = $%d", len(args))
	}
	if filter.InvoiceStatus != nil {
		args = append(args, *filter.InvoiceStatus)
		query += fmt.Sprintf(" AND invoice_status = $%d", len(args))
	}

	if !count {
		query += fmt.Sprintf(" ORDER BY created_at %s", orderClause(filter.GetOrder()))
		args = append(args, filter.GetLimit())
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.GetOffset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return query, args
}

const updateInvoiceQuery = `
	UPDATE invoices SET
		invoice_status = :invoice_status,
		voided_at = :voided_at,
		metadata = :metadata,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id AND status = :status`

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	q := r.db.GetQuerier(ctx)
	result, err := q.NamedExecContext(ctx, updateInvoiceQuery, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.WithError(invoice.ErrInvoiceNotFound).
			WithHintf("Invoice %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
