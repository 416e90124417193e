package dto

import (
	"context"
	"time"

	"github.com/recurbill/recurbill/internal/domain/schedule"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/recurbill/recurbill/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateScheduleRequest struct {
	CustomerID       string                 `json:"customer_id" validate:"required"`
	BillingFrequency types.BillingFrequency `json:"billing_frequency" validate:"required"`
	BillingCycle     types.BillingCycle     `json:"billing_cycle"`
	BillingDay       int                    `json:"billing_day" validate:"omitempty,min=1,max=31"`
	BillDescription  string                 `json:"bill_description" validate:"omitempty,max=255"`
	BillingAmount    decimal.Decimal        `json:"billing_amount"`
	TaxRate          decimal.Decimal        `json:"tax_rate"`
	Quantity         int                    `json:"quantity" validate:"omitempty,min=1"`
	NextBillingDate  time.Time              `json:"next_billing_date" validate:"required"`
	Items            schedule.LineItems     `json:"items,omitempty"`
	Metadata         map[string]string      `json:"metadata,omitempty"`
}

type UpdateScheduleRequest struct {
	BillingFrequency *types.BillingFrequency `json:"billing_frequency"`
	BillingCycle     *types.BillingCycle     `json:"billing_cycle"`
	BillingDay       *int                    `json:"billing_day" validate:"omitempty,min=1,max=31"`
	BillDescription  *string                 `json:"bill_description" validate:"omitempty,max=255"`
	BillingAmount    *decimal.Decimal        `json:"billing_amount"`
	TaxRate          *decimal.Decimal        `json:"tax_rate"`
	Quantity         *int                    `json:"quantity" validate:"omitempty,min=1"`
	NextBillingDate  *time.Time              `json:"next_billing_date"`
	Items            schedule.LineItems      `json:"items,omitempty"`
	Metadata         map[string]string       `json:"metadata,omitempty"`
}

type ScheduleResponse struct {
	*schedule.BillingSchedule
}

// ListSchedulesResponse represents the response for listing schedules
type ListSchedulesResponse = types.ListResponse[*ScheduleResponse]

// PreviewNextBillingDateResponse is the result of a side effect free
// next-billing-date computation
type PreviewNextBillingDateResponse struct {
	ScheduleID      string    `json:"schedule_id"`
	FromDate        time.Time `json:"from_date"`
	NextBillingDate time.Time `json:"next_billing_date"`
}

// AdvanceScheduleResponse is the payload persisted after a successful
// billing cycle: the advanced billing fields of the schedule
type AdvanceScheduleResponse struct {
	ScheduleID      string    `json:"schedule_id"`
	NextBillingDate time.Time `json:"next_billing_date"`
	LastBilledDate  time.Time `json:"last_billed_date"`
	CyclesCompleted int       `json:"cycles_completed"`
}

// BillingRunResponse is the result of one billing run: the created invoice
// and the schedule as persisted after advancement
type BillingRunResponse struct {
	Invoice  *InvoiceResponse  `json:"invoice"`
	Schedule *ScheduleResponse `json:"schedule"`
}

func (r *CreateScheduleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.BillingFrequency.Validate(); err != nil {
		return err
	}
	if err := r.BillingCycle.Validate(); err != nil {
		return err
	}
	if r.BillingAmount.IsNegative() {
		return ierr.NewError("billing amount cannot be negative").
			WithHint("Billing amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("tax rate out of range").
			WithHint("Tax rate must be a percentage between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateScheduleRequest) ToSchedule(ctx context.Context) *schedule.BillingSchedule {
	billingDay := r.BillingDay
	if billingDay <= 0 {
		billingDay = 1
	}
	quantity := r.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	return &schedule.BillingSchedule{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SCHEDULE),
		CustomerID:       r.CustomerID,
		BillingFrequency: r.BillingFrequency,
		BillingCycle:     r.BillingCycle,
		BillingDay:       billingDay,
		BillDescription:  r.BillDescription,
		BillingAmount:    r.BillingAmount,
		TaxRate:          r.TaxRate,
		Quantity:         quantity,
		NextBillingDate:  r.NextBillingDate.UTC(),
		CyclesCompleted:  0,
		ScheduleStatus:   types.ScheduleStatusActive,
		Items:            r.Items,
		Metadata:         r.Metadata,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateScheduleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillingFrequency != nil {
		if err := r.BillingFrequency.Validate(); err != nil {
			return err
		}
	}
	if r.BillingCycle != nil {
		if err := r.BillingCycle.Validate(); err != nil {
			return err
		}
	}
	if r.BillingAmount != nil && r.BillingAmount.IsNegative() {
		return ierr.NewError("billing amount cannot be negative").
			WithHint("Billing amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if r.TaxRate != nil && (r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		return ierr.NewError("tax rate out of range").
			WithHint("Tax rate must be a percentage between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply copies the requested changes onto the schedule. Billing progress
// fields (last billed date, cycles completed) are never updatable through
// the API; only billing runs move them.
func (r *UpdateScheduleRequest) Apply(s *schedule.BillingSchedule) {
	if r.BillingFrequency != nil {
		s.BillingFrequency = *r.BillingFrequency
	}
	if r.BillingCycle != nil {
		s.BillingCycle = *r.BillingCycle
	}
	if r.BillingDay != nil {
		s.BillingDay = *r.BillingDay
	}
	if r.BillDescription != nil {
		s.BillDescription = *r.BillDescription
	}
	if r.BillingAmount != nil {
		s.BillingAmount = *r.BillingAmount
	}
	if r.TaxRate != nil {
		s.TaxRate = *r.TaxRate
	}
	if r.Quantity != nil {
		s.Quantity = *r.Quantity
	}
	if r.NextBillingDate != nil {
		s.NextBillingDate = r.NextBillingDate.UTC()
	}
	if r.Items != nil {
		s.Items = r.Items
	}
	if r.Metadata != nil {
		s.Metadata = r.Metadata
	}
}
