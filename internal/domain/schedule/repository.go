package schedule

import (
	"context"

	"github.com/recurbill/recurbill/internal/types"
)

// Repository defines the interface for billing schedule data access
type Repository interface {
	Create(ctx context.Context, schedule *BillingSchedule) error
	Get(ctx context.Context, id string) (*BillingSchedule, error)
	// GetForUpdate loads a schedule with a row lock so that concurrent
	// billing runs serialize on the schedule's billing fields
	GetForUpdate(ctx context.Context, id string) (*BillingSchedule, error)
	List(ctx context.Context, filter *types.ScheduleFilter) ([]*BillingSchedule, error)
	Count(ctx context.Context, filter *types.ScheduleFilter) (int, error)
	Update(ctx context.Context, schedule *BillingSchedule) error
	Delete(ctx context.Context, id string) error
}
