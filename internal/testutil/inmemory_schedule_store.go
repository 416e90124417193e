package testutil

import (
	"context"

	"github.com/recurbill/recurbill/internal/domain/schedule"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/samber/lo"
)

// InMemoryScheduleStore implements schedule.Repository
type InMemoryScheduleStore struct {
	*InMemoryStore[*schedule.BillingSchedule]
}

// NewInMemoryScheduleStore creates a new in-memory billing schedule store
func NewInMemoryScheduleStore() *InMemoryScheduleStore {
	return &InMemoryScheduleStore{
		InMemoryStore: NewInMemoryStore[*schedule.BillingSchedule](),
	}
}

func copySchedule(s *schedule.BillingSchedule) *schedule.BillingSchedule {
	if s == nil {
		return nil
	}
	copied := &schedule.BillingSchedule{
		ID:               s.ID,
		CustomerID:       s.CustomerID,
		BillingFrequency: s.BillingFrequency,
		BillingCycle:     s.BillingCycle,
		BillingDay:       s.BillingDay,
		BillDescription:  s.BillDescription,
		BillingAmount:    s.BillingAmount,
		TaxRate:          s.TaxRate,
		Quantity:         s.Quantity,
		NextBillingDate:  s.NextBillingDate,
		CyclesCompleted:  s.CyclesCompleted,
		ScheduleStatus:   s.ScheduleStatus,
		Items:            append(schedule.LineItems(nil), s.Items...),
		Metadata:         lo.Assign(types.Metadata{}, s.Metadata),
		BaseModel: types.BaseModel{
			TenantID:  s.TenantID,
			Status:    s.Status,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
			CreatedBy: s.CreatedBy,
			UpdatedBy: s.UpdatedBy,
		},
	}
	if s.LastBilledDate != nil {
		t := *s.LastBilledDate
		copied.LastBilledDate = &t
	}
	return copied
}

func scheduleNotFound(id string) error {
	return ierr.NewError("billing schedule not found").
		WithHintf("Billing schedule with ID %s was not found", id).
		WithReportableDetails(map[string]any{
			"schedule_id": id,
		}).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryScheduleStore) Create(ctx context.Context, sch *schedule.BillingSchedule) error {
	if sch == nil {
		return ierr.NewError("schedule cannot be nil").
			WithHint("Schedule cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sch.ID, copySchedule(sch))
}

func (s *InMemoryScheduleStore) Get(ctx context.Context, id string) (*schedule.BillingSchedule, error) {
	sch, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, scheduleNotFound(id)
	}
	return copySchedule(sch), nil
}

// GetForUpdate behaves like Get; there are no row locks in memory
func (s *InMemoryScheduleStore) GetForUpdate(ctx context.Context, id string) (*schedule.BillingSchedule, error) {
	return s.Get(ctx, id)
}

func scheduleFilterFn(ctx context.Context, sch *schedule.BillingSchedule, filter interface{}) bool {
	f, ok := filter.(*types.ScheduleFilter)
	if !ok {
		return true
	}
	if sch.TenantID != types.GetTenantID(ctx) {
		return false
	}
	if sch.Status != f.GetStatus() {
		return false
	}
	if f.CustomerID != "" && sch.CustomerID != f.CustomerID {
		return false
	}
	if f.ScheduleStatus != nil && sch.ScheduleStatus != *f.ScheduleStatus {
		return false
	}
	if f.DueBefore != nil && sch.NextBillingDate.After(*f.DueBefore) {
		return false
	}
	return true
}

func scheduleSortFn(i, j *schedule.BillingSchedule) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryScheduleStore) List(ctx context.Context, filter *types.ScheduleFilter) ([]*schedule.BillingSchedule, error) {
	schedules, err := s.InMemoryStore.List(ctx, filter, scheduleFilterFn, scheduleSortFn)
	if err != nil {
		return nil, err
	}
	schedules = paginate(schedules, filter.GetOffset(), filter.GetLimit())
	return lo.Map(schedules, func(sch *schedule.BillingSchedule, _ int) *schedule.BillingSchedule {
		return copySchedule(sch)
	}), nil
}

func (s *InMemoryScheduleStore) Count(ctx context.Context, filter *types.ScheduleFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, scheduleFilterFn)
}

func (s *InMemoryScheduleStore) Update(ctx context.Context, sch *schedule.BillingSchedule) error {
	if sch == nil {
		return ierr.NewError("schedule cannot be nil").
			WithHint("Schedule cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Update(ctx, sch.ID, copySchedule(sch)); err != nil {
		return scheduleNotFound(sch.ID)
	}
	return nil
}

func (s *InMemoryScheduleStore) Delete(ctx context.Context, id string) error {
	sch, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return scheduleNotFound(id)
	}
	copied := copySchedule(sch)
	copied.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, copied)
}
