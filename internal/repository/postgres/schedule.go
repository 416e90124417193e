package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/recurbill/recurbill/internal/domain/schedule"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/logger"
	"github.com/recurbill/recurbill/internal/postgres"
	"github.com/recurbill/recurbill/internal/types"
)

type scheduleRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewScheduleRepository(db postgres.IClient, logger *logger.Logger) schedule.Repository {
	return &scheduleRepository{db: db, logger: logger}
}

const scheduleColumns = `
	id, customer_id, billing_frequency, billing_cycle, billing_day,
	bill_description, billing_amount, tax_rate, quantity,
	next_billing_date, last_billed_date, cycles_completed, schedule_status,
	items, metadata,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

const insertScheduleQuery = `
	INSERT INTO billing_schedules (` + scheduleColumns + `)
	VALUES (
		:id, :customer_id, :billing_frequency, :billing_cycle, :billing_day,
		:bill_description, :billing_amount, :tax_rate, :quantity,
		:next_billing_date, :last_billed_date, :cycles_completed, :schedule_status,
		:items, :metadata,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *scheduleRepository) Create(ctx context.Context, s *schedule.BillingSchedule) error {
	q := r.db.GetQuerier(ctx)
	if _, err := q.NamedExecContext(ctx, insertScheduleQuery, s); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create billing schedule").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id string) (*schedule.BillingSchedule, error) {
	return r.get(ctx, id, false)
}

func (r *scheduleRepository) GetForUpdate(ctx context.Context, id string) (*schedule.BillingSchedule, error) {
	return r.get(ctx, id, true)
}

func (r *scheduleRepository) get(ctx context.Context, id string, forUpdate bool) (*schedule.BillingSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM billing_schedules
		WHERE id = $1 AND tenant_id = $2 AND status = $3`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var s schedule.BillingSchedule
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &s, query, id, types.GetTenantID(ctx), types.StatusPublished)
	if err == sql.ErrNoRows {
		return nil, ierr.WithError(schedule.ErrScheduleNotFound).
			WithHintf("Billing schedule %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get billing schedule").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *scheduleRepository) List(ctx context.Context, filter *types.ScheduleFilter) ([]*schedule.BillingSchedule, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	schedules := make([]*schedule.BillingSchedule, 0)
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list billing schedules").
			Mark(ierr.ErrDatabase)
	}
	return schedules, nil
}

func (r *scheduleRepository) Count(ctx context.Context, filter *types.ScheduleFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count billing schedules").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *scheduleRepository) buildListQuery(ctx context.Context, filter *types.ScheduleFilter, count bool) (string, []interface{}) {
	cols := scheduleColumns
	if count {
		cols = "COUNT(*)"
	}

	query := `SELECT ` + cols + ` FROM billing_schedules WHERE tenant_id = $1 AND status = $2`
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.ScheduleStatus != nil {
		args = append(args, *filter.ScheduleStatus)
		query += fmt.Sprintf(" AND schedule_status = $%d", len(args))
	}
	if filter.DueBefore != nil {
		args = append(args, filter.DueBefore.UTC())
		query += fmt.Sprintf(" AND next_billing_date <= $%d", len(args))
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

const updateScheduleQuery = `
	UPDATE billing_schedules SET
		billing_frequency = :billing_frequency,
		billing_cycle = :billing_cycle,
		billing_day = :billing_day,
		bill_description = :bill_description,
		billing_amount = :billing_amount,
		tax_rate = :tax_rate,
		quantity = :quantity,
		next_billing_date = :next_billing_date,
		last_billed_date = :last_billed_date,
		cycles_completed = :cycles_completed,
		schedule_status = :schedule_status,
		items = :items,
		metadata = :metadata,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id AND status = :status`

func (r *scheduleRepository) Update(ctx context.Context, s *schedule.BillingSchedule) error {
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)

	q := r.db.GetQuerier(ctx)
	result, err := q.NamedExecContext(ctx, updateScheduleQuery, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update billing schedule").
			Mark(ierr.ErrDatabase)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.WithError(schedule.ErrScheduleNotFound).
			WithHintf("Billing schedule %s was not found", s.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE billing_schedules
		SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5 AND status = $6`

	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, query,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx),
		id, types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete billing schedule").
			Mark(ierr.ErrDatabase)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.WithError(schedule.ErrScheduleNotFound).
			WithHintf("Billing schedule %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func orderClause(order string) string {
	if order == types.OrderAsc {
		return "ASC"
	}
	return "DESC"
}
