package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/recurbill/recurbill/internal/domain/customer"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/logger"
	"github.com/recurbill/recurbill/internal/postgres"
	"github.com/recurbill/recurbill/internal/types"
)

type customerRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewCustomerRepository(db postgres.IClient, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

const customerColumns = `
	id, external_id, name, email, currency, payment_terms, metadata,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

const insertCustomerQuery = `
	INSERT INTO customers (` + customerColumns + `)
	VALUES (
		:id, :external_id, :name, :email, :currency, :payment_terms, :metadata,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	q := r.db.GetQuerier(ctx)
	if _, err := q.NamedExecContext(ctx, insertCustomerQuery, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1 AND tenant_id = $2 AND status = $3`

	var c customer.Customer
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &c, query, id, types.GetTenantID(ctx), types.StatusPublished)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) GetByExternalID(ctx context.Context, externalID string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE external_id = $1 AND tenant_id = $2 AND status = $3`

	var c customer.Customer
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &c, query, externalID, types.GetTenantID(ctx), types.StatusPublished)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with external id %s was not found", externalID).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	customers := make([]*customer.Customer, 0)
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *customerRepository) buildListQuery(ctx context.Context, filter *types.CustomerFilter, count bool) (string, []interface{}) {
	cols := customerColumns
	if count {
		cols = "COUNT(*)"
	}

	query := `SELECT ` + cols + ` FROM customers WHERE tenant_id = $1 AND status = $2`
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.ExternalID != "" {
		args = append(args, filter.ExternalID)
		query += fmt.Sprintf(" AND external_id = $%d", len(args))
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

const updateCustomerQuery = `
	UPDATE customers SET
		external_id = :external_id,
		name = :name,
		email = :email,
		currency = :currency,
		payment_terms = :payment_terms,
		metadata = :metadata,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id AND status = :status`

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	q := r.db.GetQuerier(ctx)
	result, err := q.NamedExecContext(ctx, updateCustomerQuery, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE customers
		SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5 AND status = $6`

	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, query,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx),
		id, types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
