package service

import (
	"context"
	"time"

	"github.com/recurbill/recurbill/internal/api/dto"
	"github.com/recurbill/recurbill/internal/domain/schedule"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/samber/lo"
)

// ScheduleService manages billing schedules and runs their billing cycles
type ScheduleService interface {
	CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	ListSchedules(ctx context.Context, filter *types.ScheduleFilter) (*dto.ListSchedulesResponse, error)
	UpdateSchedule(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id string) error

	PauseSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	ResumeSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	CancelSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)

	// PreviewNextBillingDate computes the schedule's next billing date
	// without side effects
	PreviewNextBillingDate(ctx context.Context, id string, from *time.Time) (*dto.PreviewNextBillingDateResponse, error)

	// ListDueSchedules returns active schedules whose next billing date is
	// on or before the given instant
	ListDueSchedules(ctx context.Context, asOf time.Time) (*dto.ListSchedulesResponse, error)

	// RunBilling generates an invoice from the schedule and advances it,
	// atomically: the cycle counts as advanced only once both writes commit
	RunBilling(ctx context.Context, id string) (*dto.BillingRunResponse, error)
}

type scheduleService struct {
	ServiceParams
}

func NewScheduleService(params ServiceParams) ScheduleService {
	return &scheduleService{
		ServiceParams: params,
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The customer must exist before a schedule can bill it
	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	sched := req.ToSchedule(ctx)
	if err := s.ScheduleRepo.Create(ctx, sched); err != nil {
		return nil, err
	}

	s.Logger.Infow("created billing schedule",
		"schedule_id", sched.ID,
		"customer_id", sched.CustomerID,
		"billing_frequency", sched.BillingFrequency,
	)

	return &dto.ScheduleResponse{BillingSchedule: sched}, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	sched, err := s.ScheduleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ScheduleResponse{BillingSchedule: sched}, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context, filter *types.ScheduleFilter) (*dto.ListSchedulesResponse, error) {
	if filter == nil {
		filter = &types.ScheduleFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}

	schedules, err := s.ScheduleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.ScheduleRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListSchedulesResponse{
		Items: lo.Map(schedules, func(sched *schedule.BillingSchedule, _ int) *dto.ScheduleResponse {
			return &dto.ScheduleResponse{BillingSchedule: sched}
		}),
		Total: count,
	}, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sched, err := s.ScheduleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(sched)
	if err := s.ScheduleRepo.Update(ctx, sched); err != nil {
		return nil, err
	}

	return &dto.ScheduleResponse{BillingSchedule: sched}, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, id string) error {
	return s.ScheduleRepo.Delete(ctx, id)
}

func (s *scheduleService) PauseSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	return s.transitionStatus(ctx, id, types.ScheduleStatusPaused, types.ScheduleStatusActive)
}

func (s *scheduleService) ResumeSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	return s.transitionStatus(ctx, id, types.ScheduleStatusActive, types.ScheduleStatusPaused)
}

func (s *scheduleService) CancelSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	return s.transitionStatus(ctx, id, types.ScheduleStatusCancelled,
		types.ScheduleStatusActive, types.ScheduleStatusPaused)
}

// transitionStatus moves the schedule to target if its current status is
// one of the allowed sources. Cancellation is terminal; billing progress
// fields are never touched by status transitions.
func (s *scheduleService) transitionStatus(ctx context.Context, id string, target types.ScheduleStatus, from ...types.ScheduleStatus) (*dto.ScheduleResponse, error) {
	var resp *dto.ScheduleResponse

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		sched, err := s.ScheduleRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if !lo.Contains(from, sched.ScheduleStatus) {
			return ierr.NewError("invalid schedule status transition").
				WithHintf("Cannot move a %s schedule to %s", sched.ScheduleStatus, target).
				WithReportableDetails(map[string]any{
					"schedule_id":    sched.ID,
					"current_status": sched.ScheduleStatus,
					"target_status":  target,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		sched.ScheduleStatus = target
		if err := s.ScheduleRepo.Update(txCtx, sched); err != nil {
			return err
		}

		resp = &dto.ScheduleResponse{BillingSchedule: sched}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("schedule status changed",
		"schedule_id", id,
		"schedule_status", target,
	)
	return resp, nil
}

func (s *scheduleService) PreviewNextBillingDate(ctx context.Context, id string, from *time.Time) (*dto.PreviewNextBillingDateResponse, error) {
	sched, err := s.ScheduleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fromDate := sched.NextBillingDate
	if from != nil {
		fromDate = from.UTC()
	}

	next, err := types.NextBillingDate(fromDate, sched.BillingFrequency, sched.BillingDay, sched.BillingCycle)
	if err != nil {
		return nil, err
	}

	return &dto.PreviewNextBillingDateResponse{
		ScheduleID:      sched.ID,
		FromDate:        fromDate,
		NextBillingDate: next,
	}, nil
}

func (s *scheduleService) ListDueSchedules(ctx context.Context, asOf time.Time) (*dto.ListSchedulesResponse, error) {
	filter := &types.ScheduleFilter{
		QueryFilter:    types.NewDefaultQueryFilter(),
		ScheduleStatus: lo.ToPtr(types.ScheduleStatusActive),
		DueBefore:      lo.ToPtr(asOf.UTC()),
	}
	return s.ListSchedules(ctx, filter)
}

func (s *scheduleService) RunBilling(ctx context.Context, id string) (*dto.BillingRunResponse, error) {
	now := time.Now().UTC()

	var resp *dto.BillingRunResponse
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		// Row lock serializes concurrent runs for the same schedule so two
		// callers cannot both advance from the same cycle counter
		sched, err := s.ScheduleRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		// Advancement is computed first so a non-billable schedule fails
		// before any invoice exists
		advance, err := ComputeAdvance(sched, now)
		if err != nil {
			return err
		}

		cust, err := s.CustomerRepo.Get(txCtx, sched.CustomerID)
		if err != nil {
			return err
		}

		draft := BuildInvoiceDraftFromSchedule(sched, cust, now)
		if err := draft.Validate(); err != nil {
			return err
		}

		inv := draft.ToInvoice(txCtx)
		if err := s.InvoiceRepo.CreateWithLineItems(txCtx, inv); err != nil {
			return err
		}

		sched.NextBillingDate = advance.NextBillingDate
		sched.LastBilledDate = lo.ToPtr(advance.LastBilledDate)
		sched.CyclesCompleted = advance.CyclesCompleted
		if err := s.ScheduleRepo.Update(txCtx, sched); err != nil {
			return err
		}

		resp = &dto.BillingRunResponse{
			Invoice:  &dto.InvoiceResponse{Invoice: inv},
			Schedule: &dto.ScheduleResponse{BillingSchedule: sched},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("billing run completed",
		"schedule_id", id,
		"invoice_id", resp.Invoice.ID,
		"next_billing_date", resp.Schedule.NextBillingDate,
		"cycles_completed", resp.Schedule.CyclesCompleted,
	)
	return resp, nil
}
